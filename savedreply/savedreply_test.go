package savedreply

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestNone(t *testing.T) {
	if None.IsSaved("g", 1) {
		t.Error("None must never report saved posts")
	}
}

func TestSet(t *testing.T) {
	s := NewSet()
	s.Add("g", 100)
	s.Add("g", 7)
	s.Add("a", 100)

	tests := []struct {
		board string
		no    int
		want  bool
	}{
		{"g", 100, true},
		{"g", 7, true},
		{"a", 100, true},
		{"a", 7, false},
		{"v", 100, false},
		{"G", 100, false},
	}
	for _, tt := range tests {
		if got := s.IsSaved(tt.board, tt.no); got != tt.want {
			t.Errorf("IsSaved(%q, %d) = %v, want %v", tt.board, tt.no, got, tt.want)
		}
	}

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if got, want := s.Strings(), []string{"/a/100", "/g/7", "/g/100"}; !slices.Equal(got, want) {
		t.Errorf("Strings() = %v, want %v", got, want)
	}

	s.Remove("g", 7)
	if s.IsSaved("g", 7) {
		t.Error("removed entry is still saved")
	}
}

func TestSet_Nil(t *testing.T) {
	var s *Set
	if s.IsSaved("g", 1) {
		t.Error("nil set must not report saved posts")
	}
	if s.Len() != 0 || s.Strings() != nil {
		t.Error("nil set must be empty")
	}
}

func TestSet_Concurrent(t *testing.T) {
	s := NewSet()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range 100 {
				s.Add("b", i*100+n)
				s.IsSaved("b", n)
			}
		}()
	}
	wg.Wait()
	if s.Len() != 800 {
		t.Errorf("Len() = %d, want 800", s.Len())
	}
}

func TestSaveAndLoad(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "replies.db")

	if err := Save(ctx, db, "g", 1000, 1001); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	// repeated entries are ignored
	if err := Save(ctx, db, "g", 1000); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := Save(ctx, db, "v", 5); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	set, err := Load(ctx, db, log)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, want := set.Strings(), []string{"/g/1000", "/g/1001", "/v/5"}; !slices.Equal(got, want) {
		t.Errorf("loaded %v, want %v", got, want)
	}
	if !set.IsSaved("v", 5) || set.IsSaved("v", 1000) {
		t.Error("unexpected lookup result after Load")
	}
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing database", func(t *testing.T) {
		if _, err := Load(ctx, filepath.Join(t.TempDir(), "absent.db"), nil); err == nil {
			t.Error("expected error for absent database")
		}
	})

	t.Run("empty table", func(t *testing.T) {
		db := filepath.Join(t.TempDir(), "empty.db")
		if err := Save(ctx, db, "g"); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		set, err := Load(ctx, db, nil)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if set.Len() != 0 {
			t.Errorf("Len() = %d, want 0", set.Len())
		}
	})
}
