package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempStore(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempStore(t)
	content := []byte(`[{"id":"alpha"}]` + "\n")
	if err := s.Write("castles.json", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("castles.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempStore(t)
	if err := s.Write("enhancements/batch/one.json", []byte("[]")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("enhancements/batch/one.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("content = %q", got)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	if err := s.Write("out.json", []byte("[]")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".castellan-tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestDelete(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("del.json", []byte("[]"))
	if err := s.Delete("del.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.json"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestListFiltersByExtension(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("a.json", []byte("[]"))
	_ = s.Write("enhancements/b.json", []byte("[]"))
	_ = s.Write("notes.txt", []byte("not a dataset"))

	metas, err := s.List("", ".json")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("len = %d, want 2", len(metas))
	}
	for _, m := range metas {
		if !strings.HasSuffix(m.Path, ".json") {
			t.Errorf("unexpected path %q", m.Path)
		}
		if m.Checksum == "" {
			t.Errorf("missing checksum for %q", m.Path)
		}
	}
}

func TestListSubdir(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("castles.json", []byte("[]"))
	_ = s.Write("enhancements/b.json", []byte("[]"))

	metas, err := s.List("enhancements", ".json")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 1 {
		t.Fatalf("len = %d, want 1", len(metas))
	}
	if metas[0].Path != filepath.Join("enhancements", "b.json") {
		t.Errorf("path = %q", metas[0].Path)
	}
}

func TestPathTraversalRejected(t *testing.T) {
	s := tempStore(t)
	if _, err := s.Read("../outside.json"); err == nil {
		t.Error("read outside root should fail")
	}
	if err := s.Write("../outside.json", []byte("x")); err == nil {
		t.Error("write outside root should fail")
	}
	if _, err := s.Read("/etc/passwd"); err == nil {
		t.Error("absolute path should fail")
	}
}

func TestNewFSRequiresDirectory(t *testing.T) {
	if _, err := NewFS(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("missing root should fail")
	}
}
