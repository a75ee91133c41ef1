package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindSchemaFiles(t *testing.T) {
	dir := t.TempDir()

	write := func(rel string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("output_models: []\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("stocks.yml")
	write("metrics.yaml")
	write("nested/more.yml")
	write("README.md")
	write("notes.txt")

	files, err := FindSchemaFiles(dir)
	if err != nil {
		t.Fatalf("FindSchemaFiles() error: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("expected 3 schema files, got %d: %v", len(files), files)
	}

	expected := []string{
		filepath.Join(dir, "metrics.yaml"),
		filepath.Join(dir, "nested", "more.yml"),
		filepath.Join(dir, "stocks.yml"),
	}
	for i, want := range expected {
		if files[i] != want {
			t.Errorf("files[%d] = %q; want %q", i, files[i], want)
		}
	}
}

func TestFindSchemaFilesMissingDir(t *testing.T) {
	_, err := FindSchemaFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFindSchemaFilesEmptyDir(t *testing.T) {
	files, err := FindSchemaFiles(t.TempDir())
	if err != nil {
		t.Fatalf("FindSchemaFiles() error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}
