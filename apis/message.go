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

import "time"

// Message is the minimal shape a log channel needs from the logger's
// record type. A channel must not depend on anything else about the
// caller's message: no priority, no source, no structured fields — those
// belong to the formatter/logger façade, which is an external collaborator.
type Message interface {
	// Text returns the formatted body of the record, without a trailing
	// newline. The channel appends its own record separator.
	Text() string
}

// Clock supplies the current time. Production code uses the real wall
// clock; tests inject a fake one so interval-based rotation (§4.5 "size"/
// "interval" triggers) and timestamp archive naming are deterministic.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
