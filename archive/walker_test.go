package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func makeZip(t *testing.T, files map[string]string, dirs ...string) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "threads.zip")

	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, d := range dirs {
		if _, err := w.Create(d); err != nil {
			t.Fatalf("Failed to create dir %s in zip: %v", d, err)
		}
	}
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finalize zip: %v", err)
	}
	return zipPath
}

func collect(t *testing.T, zipPath, prefix string) []string {
	t.Helper()
	var visited []string
	err := Walk(zipPath, prefix, func(archive string, file *zip.File) error {
		if archive != zipPath {
			t.Errorf("archive = %s, want %s", archive, zipPath)
		}
		visited = append(visited, file.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	return visited
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t, map[string]string{
		"g/thread-10.json": "{}",
		"g/thread-2.json":  "{}",
		"g/thread-1.json":  "{}",
		"v/thread-5.json":  "{}",
		"readme.txt":       "text",
	}, "g/", "v/")

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"board prefix", "g/", []string{"g/thread-1.json", "g/thread-2.json", "g/thread-10.json"}},
		{"single file", "v/thread-5.json", []string{"v/thread-5.json"}},
		{"no match", "a/", nil},
		{"everything", "", []string{"g/thread-1.json", "g/thread-2.json", "g/thread-10.json", "readme.txt", "v/thread-5.json"}},
		{"case sensitive", "G/", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(t, zipPath, tt.prefix); !slices.Equal(got, tt.want) {
				t.Errorf("visited = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalk_Errors(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		err := Walk(filepath.Join(t.TempDir(), "absent.zip"), "", func(string, *zip.File) error { return nil })
		if err == nil {
			t.Error("expected error for nonexistent archive")
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "thread.json")
		if err := os.WriteFile(p, []byte(`{"posts":[]}`), 0644); err != nil {
			t.Fatal(err)
		}
		if err := Walk(p, "", func(string, *zip.File) error { return nil }); err == nil {
			t.Error("expected error for invalid archive")
		}
	})

	t.Run("walkFn error stops walk", func(t *testing.T) {
		zipPath := makeZip(t, map[string]string{"a.json": "1", "b.json": "2"})
		stop := errors.New("stop")
		calls := 0
		err := Walk(zipPath, "", func(string, *zip.File) error {
			calls++
			return stop
		})
		if !errors.Is(err, stop) {
			t.Errorf("Walk() error = %v, want %v", err, stop)
		}
		if calls != 1 {
			t.Errorf("walkFn called %d times, want 1", calls)
		}
	})

	t.Run("unsafe entry", func(t *testing.T) {
		zipPath := makeZip(t, map[string]string{"../evil.json": "{}", "ok.json": "{}"})
		if err := Walk(zipPath, "", func(string, *zip.File) error { return nil }); err == nil {
			t.Error("expected error for unsafe archive")
		}
	})
}

func TestWalk_FileContent(t *testing.T) {
	zipPath := makeZip(t, map[string]string{"b/thread.json": `{"posts":[{"no":1}]}`})
	err := Walk(zipPath, "b/", func(_ string, file *zip.File) error {
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		if string(data) != `{"posts":[{"no":1}]}` {
			t.Errorf("content = %q", data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"g/thread.json", true},
		{"thread..json", true},
		{"/etc/passwd", false},
		{`\windows`, false},
		{"g/../../x", false},
		{"..", false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
