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

// Package purge implements the purge strategy: retain all, keep the N most
// recent archives, or delete archives older than an age cutoff. It
// operates on the same basename-prefix convention package archive writes,
// grouping count- and age-based retention over a directory scan.
package purge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dxlogs/filechannel/apis/errkind"
	"github.com/dxlogs/filechannel/runtime/archive"
)

// Mode names the recognized purge attribute grammars.
type Mode string

const (
	ModeNone  Mode = "none"
	ModeCount Mode = "count"
	ModeAge   Mode = "age"
)

// Config describes the active purge policy, parsed from the purge
// attribute's "none" / "count:N" / "age:duration" grammar.
type Config struct {
	Mode Mode
	N    int
	Age  time.Duration
}

// candidate is one archive file under consideration for deletion.
type candidate struct {
	path   string
	mtime  time.Time
	suffix int
	hasSeq bool
}

// ParseConfig parses the purge attribute grammar. ok is false (Config is
// ModeNone) when the value is unrecognized: unrecognized values fall back
// to none.
func ParseConfig(s string) (cfg Config, ok bool) {
	switch {
	case s == "" || s == string(ModeNone):
		return Config{Mode: ModeNone}, true
	case strings.HasPrefix(s, "count:"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "count:"))
		if err != nil || n < 0 {
			return Config{Mode: ModeNone}, false
		}
		return Config{Mode: ModeCount, N: n}, true
	case strings.HasPrefix(s, "age:"):
		d, err := time.ParseDuration(strings.TrimPrefix(s, "age:"))
		if err != nil || d < 0 {
			return Config{Mode: ModeNone}, false
		}
		return Config{Mode: ModeAge, Age: d}, true
	default:
		return Config{Mode: ModeNone}, false
	}
}

// Apply deletes archives under dir (files named base+".*") according to
// cfg. archiveMode tells Apply how to rank "most recent" for ModeCount:
// by numeric suffix for archive.ModeNumber, by mtime for
// archive.ModeTimestamp (and for anything else, mtime is the only signal
// available).
func Apply(dir, base string, cfg Config, archiveMode archive.Mode, now time.Time) error {
	if cfg.Mode == ModeNone {
		return nil
	}

	names, err := archive.ListArchives(dir, base)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	candidates := make([]candidate, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, statErr := os.Stat(path)
		if statErr != nil {
			continue
		}
		c := candidate{path: path, mtime: info.ModTime()}
		if n, convErr := strconv.Atoi(strings.TrimPrefix(name, base+".")); convErr == nil {
			c.suffix = n
			c.hasSeq = true
		}
		candidates = append(candidates, c)
	}

	switch cfg.Mode {
	case ModeCount:
		sort.Slice(candidates, func(i, j int) bool {
			if archiveMode == archive.ModeNumber && candidates[i].hasSeq && candidates[j].hasSeq {
				return candidates[i].suffix < candidates[j].suffix
			}
			return candidates[i].mtime.Before(candidates[j].mtime)
		})
		if len(candidates) <= cfg.N {
			return nil
		}
		toDelete := candidates[:len(candidates)-cfg.N]
		return removeAll(toDelete)
	case ModeAge:
		cutoff := now.Add(-cfg.Age)
		var toDelete []candidate
		for _, c := range candidates {
			if c.mtime.Before(cutoff) {
				toDelete = append(toDelete, c)
			}
		}
		return removeAll(toDelete)
	default:
		return nil
	}
}

func removeAll(cs []candidate) error {
	var firstErr error
	for _, c := range cs {
		if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("purge: remove %q: %w: %v", c.path, errkind.ErrIOError, err)
			}
		}
	}
	return firstErr
}
