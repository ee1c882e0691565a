package purge

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dxlogs/filechannel/runtime/archive"
)

func TestParseConfig_Table(t *testing.T) {
	cases := []struct {
		in       string
		wantMode Mode
		wantOK   bool
	}{
		{"none", ModeNone, true},
		{"", ModeNone, true},
		{"count:3", ModeCount, true},
		{"count:0", ModeCount, true},
		{"count:-1", ModeNone, false},
		{"count:x", ModeNone, false},
		{"age:24h", ModeAge, true},
		{"age:bogus", ModeNone, false},
		{"bogus", ModeNone, false},
	}
	for _, c := range cases {
		cfg, ok := ParseConfig(c.in)
		if cfg.Mode != c.wantMode || ok != c.wantOK {
			t.Errorf("ParseConfig(%q) = (%+v, %v), want mode %q ok %v", c.in, cfg, ok, c.wantMode, c.wantOK)
		}
	}
}

func writeBackup(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o640); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Chtimes(%s): %v", path, err)
	}
}

func TestApply_Count_KeepsHighestNumericSuffixes(t *testing.T) {
	dir := t.TempDir()
	base := "app.log"
	now := time.Now()
	for i := 0; i < 5; i++ {
		writeBackup(t, filepath.Join(dir, base+"."+string(rune('0'+i))), now.Add(time.Duration(i)*time.Minute))
	}

	cfg := Config{Mode: ModeCount, N: 2}
	if err := Apply(dir, base, cfg, archive.ModeNumber, now); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	remaining, err := archive.ListArchives(dir, base)
	if err != nil {
		t.Fatalf("ListArchives: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("remaining = %v, want 2 files", remaining)
	}
	keepHighest := map[string]bool{"app.log.3": true, "app.log.4": true}
	for _, name := range remaining {
		if !keepHighest[name] {
			t.Errorf("unexpected survivor %q", name)
		}
	}
}

func TestApply_Age_DeletesOlderThanCutoff(t *testing.T) {
	dir := t.TempDir()
	base := "app.log"
	now := time.Now()

	writeBackup(t, filepath.Join(dir, base+".old"), now.Add(-48*time.Hour))
	writeBackup(t, filepath.Join(dir, base+".new"), now)

	cfg := Config{Mode: ModeAge, Age: 24 * time.Hour}
	if err := Apply(dir, base, cfg, archive.ModeTimestamp, now); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	remaining, err := archive.ListArchives(dir, base)
	if err != nil {
		t.Fatalf("ListArchives: %v", err)
	}
	if len(remaining) != 1 || remaining[0] != base+".new" {
		t.Fatalf("remaining = %v, want only %q", remaining, base+".new")
	}
}

func TestApply_None_DeletesNothing(t *testing.T) {
	dir := t.TempDir()
	base := "app.log"
	writeBackup(t, filepath.Join(dir, base+".0"), time.Now())

	if err := Apply(dir, base, Config{Mode: ModeNone}, archive.ModeNumber, time.Now()); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	remaining, err := archive.ListArchives(dir, base)
	if err != nil {
		t.Fatalf("ListArchives: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("remaining = %v, want 1 file untouched", remaining)
	}
}
