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

// Package codec implements the compressor stack: a tagged variant of codec
// kinds, each satisfying the same small {Write, Finalize, Close} capability
// set, layered live atop the byte sink rather than applied as a
// post-rotation step. Adding a codec means one new variant, not a new
// class.
package codec

import (
	"fmt"
	"io"

	"github.com/dxlogs/filechannel/apis/errkind"
)

// Mode names the recognized compression_mode attribute values.
type Mode string

const (
	ModeNone  Mode = "none"
	ModeGzip  Mode = "gzip"
	ModeBzip2 Mode = "bzip2"
	ModeZlib  Mode = "zlib"
)

// ParseMode maps an attribute string to a Mode, falling back to ModeNone
// for anything unrecognized. ok is false when the fallback was applied, so
// the caller can surface a diagnostic.
func ParseMode(s string) (mode Mode, ok bool) {
	switch Mode(s) {
	case ModeNone, ModeGzip, ModeBzip2, ModeZlib:
		return Mode(s), true
	default:
		return ModeNone, false
	}
}

// Codec writes logical record bytes through an optional compression
// filter. Write behaves like io.Writer. Finalize flushes internal state
// and writes the format's terminator frame (idempotent). Close releases
// any resources Finalize did not already release; it is safe to call
// Close without having called Finalize (Close finalizes first).
//
// Codec does not own the underlying io.Writer's lifecycle: closing a
// Codec never closes the file sink beneath it. That is filechannel's job,
// so that Finalize's terminator frame is guaranteed to land before the
// sink itself is closed.
type Codec interface {
	Write(p []byte) (int, error)
	Finalize() error
	Close() error
}

// New constructs the Codec for the given mode, writing to w.
func New(mode Mode, w io.Writer) (Codec, error) {
	switch mode {
	case ModeNone, "":
		return newNone(w), nil
	case ModeGzip:
		return newGzip(w), nil
	case ModeBzip2:
		return newBzip2(w)
	case ModeZlib:
		return newZlib(w), nil
	default:
		return nil, fmt.Errorf("codec: unknown mode %q: %w", mode, errkind.ErrInvalidConfig)
	}
}

// wrapCompressionErr wraps a codec-internal failure with errkind.ErrCompressionError.
func wrapCompressionErr(op string, err error) error {
	return fmt.Errorf("codec: %s: %w: %v", op, errkind.ErrCompressionError, err)
}

var (
	_ Codec = (*noneCodec)(nil)
	_ Codec = (*gzipCodec)(nil)
	_ Codec = (*bzip2Codec)(nil)
	_ Codec = (*zlibCodec)(nil)
)
