package assets

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"main.css", "main.css", true},
		{"css/main.css", "css/main.css", true},
		{"a//b.css", "a/b.css", true},
		{"", "", false},
		{"../secret", "", false},
		{"a/../../secret", "", false},
		{"./main.css", "", false},
		{"/etc/passwd", "", false},
		{`..\secret`, "", false},
		{"a\x00b", "", false},
	}
	for _, tt := range tests {
		got, ok := CleanPath(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CleanPath(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "css/main.css", "body{}")
	src := NewDirSource(dir)

	obj, err := src.Open(context.Background(), "css/main.css")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "body{}" || obj.Size != 6 || obj.Name != "css/main.css" {
		t.Errorf("object = %+v, body %q", obj, data)
	}
	if _, ok := obj.Body.(io.Seeker); !ok {
		t.Error("disk objects should be seekable")
	}
}

func TestDirSource_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "css/main.css", "body{}")
	writeFile(t, filepath.Dir(dir), "outside.txt", "secret")
	src := NewDirSource(dir)

	for _, name := range []string{"missing.css", "css", "../outside.txt", "/etc/passwd"} {
		_, err := src.Open(context.Background(), name)
		if !stderrors.Is(err, ErrNotFound) {
			t.Errorf("Open(%q) error = %v, want ErrNotFound", name, err)
		}
	}
}
