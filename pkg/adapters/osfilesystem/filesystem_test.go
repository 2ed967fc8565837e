package osfilesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	framePath := filepath.Join(t.TempDir(), "run", "chromium-0320.png")

	if err := fs.WriteFile(framePath, []byte("png")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(framePath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("expected %q, got %q", "png", data)
	}
}

func TestFileSystem_WriteFileReplaces(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	framePath := filepath.Join(dir, "chromium-320.png")

	if err := fs.WriteFile(framePath, []byte("first attempt, truncated")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := fs.WriteFile(framePath, []byte("retry")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, _ := os.ReadFile(framePath)
	if string(data) != "retry" {
		t.Errorf("expected retry to replace the frame, got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the frame to remain, got %v", names)
	}

	info, err := os.Stat(framePath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("expected mode 0644, got %v", info.Mode().Perm())
	}
}

func TestFileSystem_WriteFileIntoMissingParentFails(t *testing.T) {
	fs := New()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if err := fs.WriteFile(filepath.Join(blocker, "frame.png"), []byte("x")); err == nil {
		t.Error("expected error when the parent is a regular file")
	}
}

func TestFileSystem_MkdirTemp(t *testing.T) {
	fs := New()

	dir, err := fs.MkdirTemp("sweepcast-test-")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	defer os.RemoveAll(dir)

	if !strings.HasPrefix(filepath.Base(dir), "sweepcast-test-") {
		t.Errorf("unexpected temp dir name %s", dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("expected temp dir to exist, got %v", err)
	}
}

func TestFileSystem_MkdirAll(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "a", "b")

	if err := fs.MkdirAll(path); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Errorf("expected directory to exist, got %v", err)
	}
}
