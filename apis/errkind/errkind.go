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

// Package errkind defines the error taxonomy surfaced across the channel:
// InvalidConfig, NotAFile, IOError and CompressionError. Components wrap
// their underlying cause with one of these sentinels so callers can branch
// on errors.Is regardless of which component produced the failure.
package errkind

import "errors"

// Sentinel errors identifying each error kind. Components wrap these via
// fmt.Errorf("...: %w", ErrX) so the original cause (an *os.PathError, a
// codec failure, …) remains inspectable through errors.Unwrap while
// errors.Is(err, ErrIOError) etc. still works.
var (
	// ErrInvalidConfig marks an unparseable size or interval attribute.
	ErrInvalidConfig = errors.New("filechannel: invalid config")

	// ErrNotAFile marks a primary path that is a directory or otherwise
	// unopenable as a regular file.
	ErrNotAFile = errors.New("filechannel: not a file")

	// ErrIOError marks a failed write, flush, rename, unlink or stat.
	ErrIOError = errors.New("filechannel: io error")

	// ErrCompressionError marks a codec finalization or internal-state
	// failure.
	ErrCompressionError = errors.New("filechannel: compression error")
)
