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

// Package filesink implements the byte sink at the bottom of the stack: a
// plain append-mode file handle, plus Stat/CurrentSize helpers that consult
// the OS for the file's size and modification time.
package filesink

import (
	"fmt"
	"os"
	"time"

	"github.com/dxlogs/filechannel/apis/errkind"
)

// Sink is a writable stream over a single path, opened create-if-absent,
// append-if-present.
type Sink struct {
	path string
	file *os.File
}

// Open opens path for appending, creating it if it does not exist. Opening
// a path that resolves to a directory fails with errkind.ErrNotAFile.
func Open(path string, mode os.FileMode) (*Sink, error) {
	info, statErr := os.Stat(path)
	if statErr == nil && info.IsDir() {
		return nil, fmt.Errorf("filesink: %q is a directory: %w", path, errkind.ErrNotAFile)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, mode)
	if err != nil {
		return nil, fmt.Errorf("filesink: open %q: %w: %v", path, errkind.ErrIOError, err)
	}
	return &Sink{path: path, file: f}, nil
}

// Write writes p to the underlying file, returning the number of bytes
// written or an IOError.
func (s *Sink) Write(p []byte) (int, error) {
	n, err := s.file.Write(p)
	if err != nil {
		return n, fmt.Errorf("filesink: write %q: %w: %v", s.path, errkind.ErrIOError, err)
	}
	return n, nil
}

// Flush asks the OS to persist buffered data.
func (s *Sink) Flush() error {
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("filesink: sync %q: %w: %v", s.path, errkind.ErrIOError, err)
	}
	return nil
}

// Close releases the file handle.
func (s *Sink) Close() error {
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("filesink: close %q: %w: %v", s.path, errkind.ErrIOError, err)
	}
	return nil
}

// CurrentSize consults the OS for the file's current size, reporting 0
// rather than an error when the file does not exist.
func CurrentSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("filesink: stat %q: %w: %v", path, errkind.ErrIOError, err)
	}
	return uint64(info.Size()), nil
}

// Info is the subset of file metadata a caller needs at (re)open time.
type Info struct {
	Size  uint64
	MTime time.Time
}

// Stat consults the OS for path's current size and modification time in a
// single call. ok is false when path does not exist, which is not an error
// here: a missing primary file is the normal state before the first open.
func Stat(path string) (info Info, ok bool, err error) {
	st, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return Info{}, false, nil
		}
		return Info{}, false, fmt.Errorf("filesink: stat %q: %w: %v", path, errkind.ErrIOError, statErr)
	}
	return Info{Size: uint64(st.Size()), MTime: st.ModTime()}, true, nil
}
