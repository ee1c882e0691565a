package filesink

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dxlogs/filechannel/apis/errkind"
)

func TestOpen_CreatesAndAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	s, err := Open(path, 0o640)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Write([]byte("one\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path, 0o640)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if _, err := s2.Write([]byte("two\n")); err != nil {
		t.Fatalf("Write 2: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "one\ntwo\n" {
		t.Fatalf("file content = %q, want %q", data, "one\ntwo\n")
	}
}

func TestOpen_DirectoryFailsWithNotAFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(dir, 0o640)
	if err == nil {
		t.Fatalf("expected error opening a directory")
	}
	if !errors.Is(err, errkind.ErrNotAFile) {
		t.Fatalf("err = %v, want wrapping ErrNotAFile", err)
	}
}

func TestCurrentSize_MissingFileIsZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.log")

	size, err := CurrentSize(path)
	if err != nil {
		t.Fatalf("CurrentSize: %v", err)
	}
	if size != 0 {
		t.Fatalf("CurrentSize(missing) = %d, want 0", size)
	}
}

func TestCurrentSize_ReflectsWrittenBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	s, err := Open(path, 0o640)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	size, err := CurrentSize(path)
	if err != nil {
		t.Fatalf("CurrentSize: %v", err)
	}
	if size != 5 {
		t.Fatalf("CurrentSize = %d, want 5", size)
	}
}
