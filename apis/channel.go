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

package apis

// Channel is the operation set a rotating file log channel exposes to a
// logger façade. It has no callbacks and no events: every effect a caller
// can observe comes back as a return value.
//
// A Channel is not safe for concurrent use. At most one logical writer may
// call any of these methods at a time; concurrent callers must serialize
// through an external mutex (see package filechannel's doc comment for the
// rationale).
type Channel interface {
	// Open ensures the channel has an active writer. It is idempotent: a
	// second call on an already-open channel is a no-op. Open fails with
	// NotAFile if the primary path is a directory, and with IOError if it
	// cannot otherwise be stat'ed or opened.
	Open() error

	// Close finalizes the active writer, if any, flushing and closing the
	// underlying file and compressor. Close is idempotent.
	Close() error

	// Log formats msg, rotates the primary file first if the rotate policy
	// says so, then writes the record. Log lazily calls Open if the
	// channel is not already open.
	Log(msg Message) error

	// PutAttr sets a configuration attribute. Mutating an attribute takes
	// effect on the next rotation decision, not retroactively.
	PutAttr(key, value string)

	// GetAttr returns a previously set attribute and whether it was set.
	GetAttr(key string) (string, bool)

	// GetPath returns the primary file path. It never changes for the
	// channel's lifetime.
	GetPath() string

	// GetSize returns the current primary file size in bytes, or 0 if the
	// primary file does not exist.
	GetSize() uint64

	// GetLastWriteTime returns the primary file's modification time as
	// seconds since the epoch, or -1 if the primary file does not exist.
	GetLastWriteTime() int64
}
