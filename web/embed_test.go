package web

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedHasIndex(t *testing.T) {
	t.Parallel()
	content, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	data, err := fs.ReadFile(content, "index.html")
	if err != nil {
		t.Fatalf("reading index.html: %v", err)
	}
	if len(data) == 0 {
		t.Error("index.html is empty")
	}
}

func TestOpenDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("run()"), 0o644); err != nil {
		t.Fatal(err)
	}
	content, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := fs.ReadFile(content, "app.js")
	if err != nil || string(data) != "run()" {
		t.Errorf("app.js: got %q, %v", data, err)
	}
}

func TestOpenEmptyRootUsesEmbedded(t *testing.T) {
	t.Parallel()
	content, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := fs.Stat(content, "index.html"); err != nil {
		t.Errorf("embedded index.html: %v", err)
	}
}

func TestOpenRejectsMissingAndFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	for _, root := range []string{filepath.Join(dir, "missing"), file} {
		if _, err := Open(root); err == nil {
			t.Errorf("Open(%s): expected error", filepath.Base(root))
		}
	}
}
