/*
   Copyright 2025 The filechannel Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package archive implements the archive strategy: given a just-closed
// primary file, decide its fate — truncate in place, rename to a
// monotonically numbered backup, or rename to a timestamped backup.
//
// The number strategy scans the directory for the existing highest suffix
// and the timestamp strategy checks the directory for an unused name,
// rather than trusting an in-memory counter — this keeps archive names
// collision-free across process restarts, which a purely in-process
// counter could not guarantee.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dxlogs/filechannel/apis/errkind"
)

// Mode names the recognized archive attribute values.
type Mode string

const (
	ModeNone      Mode = "none"
	ModeNumber    Mode = "number"
	ModeTimestamp Mode = "timestamp"
)

// ParseMode maps an attribute string to a Mode, falling back to ModeNone
// for anything unrecognized.
func ParseMode(s string) (mode Mode, ok bool) {
	switch Mode(s) {
	case ModeNone, ModeNumber, ModeTimestamp:
		return Mode(s), true
	default:
		return ModeNone, false
	}
}

// Times selects the clock used for ISO8601 timestamp archive names.
type Times string

const (
	TimesUTC   Times = "utc"
	TimesLocal Times = "local"
)

// ParseTimes maps an attribute string to a Times, falling back to TimesUTC.
func ParseTimes(s string) (times Times, ok bool) {
	switch Times(s) {
	case TimesUTC, TimesLocal:
		return Times(s), true
	default:
		return TimesUTC, false
	}
}

// Strategy computes what happens to a just-closed primary file during
// rotation. Rotate is called with the primary already closed by the
// caller; it returns the resulting archive path, or "" for ModeNone (no
// archive is kept).
type Strategy struct {
	Mode  Mode
	Times Times
}

// Rotate performs the filesystem transition for primary at time now,
// returning the archive path it created (empty for ModeNone).
func (s Strategy) Rotate(primary string, now time.Time) (string, error) {
	switch s.Mode {
	case ModeNone, "":
		return "", rotateNone(primary)
	case ModeNumber:
		return rotateNumber(primary)
	case ModeTimestamp:
		loc := time.UTC
		if s.Times == TimesLocal {
			loc = time.Local
		}
		return rotateTimestamp(primary, now.In(loc))
	default:
		return "", fmt.Errorf("archive: unknown mode %q: %w", s.Mode, errkind.ErrInvalidConfig)
	}
}

// rotateNone truncates the primary file in place: previous contents are
// lost and no archive is kept.
func rotateNone(primary string) error {
	if err := os.Remove(primary); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("archive: truncate %q: %w: %v", primary, errkind.ErrIOError, err)
	}
	return nil
}

// rotateNumber renames primary to primary + "." + N, where N is one past
// the highest numeric suffix currently present among the primary's
// archives (0 if none exist yet). Archives therefore accumulate with
// monotonically increasing suffixes within a single uninterrupted process
// even if a purge policy has since deleted the lowest-numbered ones —
// scanning for the first free slot starting at 0 would let a freed low
// suffix be reused and assign a newer archive a smaller number than an
// older one still on disk.
func rotateNumber(primary string) (string, error) {
	dir, base := SplitDirBase(primary)
	n, err := nextNumberSuffix(dir, base)
	if err != nil {
		return "", err
	}
	candidate := primary + "." + strconv.Itoa(n)
	if err := os.Rename(primary, candidate); err != nil {
		return "", fmt.Errorf("archive: rename %q -> %q: %w: %v", primary, candidate, errkind.ErrIOError, err)
	}
	return candidate, nil
}

// nextNumberSuffix returns one past the highest numeric suffix among
// dir's base+"."-prefixed archives, or 0 if none carry a numeric suffix.
func nextNumberSuffix(dir, base string) (int, error) {
	names, err := ListArchives(dir, base)
	if err != nil {
		return 0, err
	}
	highest := -1
	prefix := base + "."
	for _, name := range names {
		n, convErr := strconv.Atoi(strings.TrimPrefix(name, prefix))
		if convErr != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

// isoLayout gives millisecond resolution, fine enough to guarantee
// uniqueness under any rotation frequency a caller could reasonably
// configure; a disambiguating counter below covers the rest.
const isoLayout = "2006-01-02T15:04:05.000Z0700"

// rotateTimestamp renames primary to primary + "." + ISO8601(now). If a
// file with that exact name already exists (sub-millisecond rotations, or
// a clock that hasn't advanced), a disambiguating counter is appended.
func rotateTimestamp(primary string, now time.Time) (string, error) {
	base := primary + "." + now.Format(isoLayout)
	candidate := base
	for n := 1; ; n++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			if err := os.Rename(primary, candidate); err != nil {
				return "", fmt.Errorf("archive: rename %q -> %q: %w: %v", primary, candidate, errkind.ErrIOError, err)
			}
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s.%d", base, n)
	}
}

// ListArchives returns the archive file names (not full paths) in dir
// whose names begin with base+"." — the prefix convention every archive
// strategy above uses, and the one package purge scans for pruning.
func ListArchives(dir, base string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("archive: read dir %q: %w: %v", dir, errkind.ErrIOError, err)
	}
	prefix := base + "."
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// SplitDirBase is a small convenience used by filechannel and purge alike
// to derive the (dir, base) pair ListArchives and the Strategy functions
// expect from a primary path.
func SplitDirBase(primary string) (dir, base string) {
	return filepath.Dir(primary), filepath.Base(primary)
}
