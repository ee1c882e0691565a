package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o640); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func TestRotate_None_TruncatesInPlace(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "app.log")
	writeFile(t, primary, "old contents")

	s := Strategy{Mode: ModeNone}
	archivePath, err := s.Rotate(primary, time.Now())
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if archivePath != "" {
		t.Fatalf("archivePath = %q, want empty", archivePath)
	}
	if _, err := os.Stat(primary); !os.IsNotExist(err) {
		t.Fatalf("primary should no longer exist, stat err = %v", err)
	}
}

func TestRotate_Number_MonotonicallyGrows(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "app.log")
	s := Strategy{Mode: ModeNumber}

	var archives []string
	for i := 0; i < 3; i++ {
		writeFile(t, primary, "round")
		a, err := s.Rotate(primary, time.Now())
		if err != nil {
			t.Fatalf("Rotate %d: %v", i, err)
		}
		archives = append(archives, a)
	}

	want := []string{
		filepath.Join(dir, "app.log.0"),
		filepath.Join(dir, "app.log.1"),
		filepath.Join(dir, "app.log.2"),
	}
	for i := range want {
		if archives[i] != want[i] {
			t.Fatalf("archives[%d] = %q, want %q", i, archives[i], want[i])
		}
		if _, err := os.Stat(want[i]); err != nil {
			t.Fatalf("expected %q to exist: %v", want[i], err)
		}
	}
}

func TestRotate_Number_SkipsExistingSuffixes(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "app.log")
	writeFile(t, primary+".0", "pre-existing")
	writeFile(t, primary, "new")

	s := Strategy{Mode: ModeNumber}
	a, err := s.Rotate(primary, time.Now())
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if a != primary+".1" {
		t.Fatalf("archive = %q, want %q", a, primary+".1")
	}
}

func TestRotate_Timestamp_ProducesUniqueNames(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "app.log")
	s := Strategy{Mode: ModeTimestamp, Times: TimesUTC}
	now := time.Date(2026, 3, 1, 12, 34, 56, 0, time.UTC)

	writeFile(t, primary, "one")
	a1, err := s.Rotate(primary, now)
	if err != nil {
		t.Fatalf("Rotate 1: %v", err)
	}
	if !strings.HasPrefix(a1, primary+".2026-03-01T12:34:56") {
		t.Fatalf("a1 = %q, want prefix %q", a1, primary+".2026-03-01T12:34:56")
	}

	writeFile(t, primary, "two")
	a2, err := s.Rotate(primary, now) // same instant: must disambiguate
	if err != nil {
		t.Fatalf("Rotate 2: %v", err)
	}
	if a1 == a2 {
		t.Fatalf("a1 == a2 == %q, want distinct names for a collision", a1)
	}
}

func TestListArchives_FindsOnlyPrefixedFiles(t *testing.T) {
	dir := t.TempDir()
	base := "app.log"
	writeFile(t, filepath.Join(dir, "app.log.0"), "a")
	writeFile(t, filepath.Join(dir, "app.log.1"), "b")
	writeFile(t, filepath.Join(dir, "unrelated.txt"), "c")

	got, err := ListArchives(dir, base)
	if err != nil {
		t.Fatalf("ListArchives: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListArchives = %v, want 2 entries", got)
	}
}
