package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	t.Run("creates file with content and extension", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := WriteTempFile("<html></html>", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		defer cleanup()

		if !strings.HasSuffix(path, ".html") {
			t.Errorf("path %q does not end in .html", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading temp file: %v", err)
		}
		if string(data) != "<html></html>" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("cleanup removes the file", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := WriteTempFile("x", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		cleanup()

		if FileExists(path) {
			t.Errorf("file %q still exists after cleanup", path)
		}
	})

	t.Run("empty extension rejected", func(t *testing.T) {
		t.Parallel()

		if _, _, err := WriteTempFile("x", ""); !errors.Is(err, ErrExtensionEmpty) {
			t.Errorf("error = %v, want ErrExtensionEmpty", err)
		}
	})

	t.Run("path separator in extension rejected", func(t *testing.T) {
		t.Parallel()

		for _, ext := range []string{"html/../../etc", `html\evil`, "html\x00"} {
			if _, _, err := WriteTempFile("x", ext); !errors.Is(err, ErrExtensionPathTraversal) {
				t.Errorf("WriteTempFile(%q) error = %v, want ErrExtensionPathTraversal", ext, err)
			}
		}
	})
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.html")
		if err := WriteFileAtomic(path, []byte("done"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if string(data) != "done" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("replaces existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.html")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatalf("seeding file: %v", err)
		}
		if err := WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "new" {
			t.Errorf("content = %q, want %q", data, "new")
		}
	})

	t.Run("leaves no temp file behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "report.html")
		if err := WriteFileAtomic(path, []byte("done"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("reading dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("dir holds %d entries, want just the artifact", len(entries))
		}
	})

	t.Run("missing directory fails without creating the artifact", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "absent", "report.html")
		if err := WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
			t.Fatal("WriteFileAtomic() into missing dir returned nil error")
		}
		if FileExists(path) {
			t.Error("artifact exists despite failure")
		}
	})
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "report.md")
	if err := os.WriteFile(path, []byte("# Revenue"), 0o644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	if !FileExists(path) {
		t.Error("FileExists() = false for existing file")
	}
	if FileExists(filepath.Join(dir, "absent.md")) {
		t.Error("FileExists() = true for missing file")
	}
	if FileExists(dir) {
		t.Error("FileExists() = true for directory")
	}
}
