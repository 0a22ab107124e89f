package convert

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("non-zip extension", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "test.txt")
		writeFile(t, filePath, "not a zip")
		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if got {
			t.Error("isArchiveFile() = true, want false")
		}
	})

	t.Run("zip extension but invalid content", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "test.zip")
		writeFile(t, filePath, "not a real zip file")
		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if got {
			t.Error("isArchiveFile() = true, want false")
		}
	})

	t.Run("empty zip named file", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "empty.zip")
		writeFile(t, filePath, "")
		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if got {
			t.Error("isArchiveFile() = true, want false")
		}
	})

	t.Run("valid zip upper case extension", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "DUMP.ZIP")
		writeZip(t, filePath, map[string]string{"g/1.json": `{"posts": []}`})
		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if !got {
			t.Error("isArchiveFile() = false, want true")
		}
	})
}

func TestIsArchiveFile_NonExistent(t *testing.T) {
	if _, err := isArchiveFile("/nonexistent/file.zip"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestIsThreadFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    bool
	}{
		{"thread", "1.json", `{"posts": []}`, true},
		{"leading blanks", "2.json", "\n\t  {\"posts\": []}", true},
		{"upper case extension", "3.JSON", `{}`, true},
		{"array", "4.json", `[1, 2]`, false},
		{"empty", "5.json", "", false},
		{"wrong extension", "6.txt", `{"posts": []}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.file)
			writeFile(t, path, tt.content)
			got, err := isThreadFile(path)
			if err != nil {
				t.Fatalf("isThreadFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("isThreadFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsThreadFile_NonExistent(t *testing.T) {
	if _, err := isThreadFile("/nonexistent/thread.json"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestIsThreadInArchive(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"g/1.json":   `{"posts": []}`,
		"g/2.json":   `not json`,
		"g/3.txt":    `{"posts": []}`,
		"g/sub.json": "",
	} {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file in zip: %v", err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write to zip: %v", err)
		}
	}
	if _, err := w.Create("dir.json/"); err != nil {
		t.Fatalf("Failed to create directory in zip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Failed to open zip: %v", err)
	}

	want := map[string]bool{
		"g/1.json":   true,
		"g/2.json":   false,
		"g/3.txt":    false,
		"g/sub.json": false,
		"dir.json/":  false,
	}
	for _, f := range r.File {
		got, err := isThreadInArchive(f)
		if err != nil {
			t.Errorf("isThreadInArchive(%s) error = %v", f.Name, err)
		}
		if got != want[f.Name] {
			t.Errorf("isThreadInArchive(%s) = %v, want %v", f.Name, got, want[f.Name])
		}
	}
}

func TestStartsWithObject(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"{", true},
		{"   {}", true},
		{"\r\n{}", true},
		{"", false},
		{"   ", false},
		{"null", false},
		{"\xef\xbb\xbf{}", false},
	}
	for _, tt := range tests {
		got, err := startsWithObject(strings.NewReader(tt.input))
		if err != nil {
			t.Errorf("startsWithObject(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("startsWithObject(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
