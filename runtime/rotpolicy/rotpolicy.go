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

// Package rotpolicy implements the rotate predicate: a pure function of
// state and the incoming record, with no I/O of its own. It is evaluated
// before every write (a pre-write check), so a rotation can fire on a
// primary that is still empty when the incoming record alone reaches the
// size threshold, leaving that rotated-out file empty.
package rotpolicy

import "time"

// Trigger names the recognized rotate attribute values.
type Trigger string

const (
	TriggerNone     Trigger = "none"
	TriggerSize     Trigger = "size"
	TriggerInterval Trigger = "interval"
)

// ParseTrigger maps an attribute string to a Trigger, falling back to
// TriggerNone for anything unrecognized.
func ParseTrigger(s string) (trigger Trigger, ok bool) {
	switch Trigger(s) {
	case TriggerNone, TriggerSize, TriggerInterval:
		return Trigger(s), true
	default:
		return TriggerNone, false
	}
}

// Config describes the active rotation policy. Only one of SizeThreshold /
// Interval is consulted, per Trigger — the attribute schema itself only
// allows one active "rotate" value at a time, so there is no real tie to
// break; size would win if it ever were configured alongside interval.
type Config struct {
	Trigger       Trigger
	SizeThreshold uint64        // bytes; consulted when Trigger == TriggerSize
	Interval      time.Duration // consulted when Trigger == TriggerInterval
}

// State is the subset of FileChannel state the predicate needs.
type State struct {
	BytesWritten uint64
	OpenedAt     time.Time
}

// ShouldRotate reports whether the channel must rotate before writing a
// record of nextRecordLen bytes at time now.
func ShouldRotate(cfg Config, st State, now time.Time, nextRecordLen int) bool {
	switch cfg.Trigger {
	case TriggerSize:
		if cfg.SizeThreshold == 0 {
			return false
		}
		if st.BytesWritten >= cfg.SizeThreshold {
			return true
		}
		return st.BytesWritten+uint64(nextRecordLen) >= cfg.SizeThreshold
	case TriggerInterval:
		if cfg.Interval <= 0 {
			return false
		}
		return now.Sub(st.OpenedAt) >= cfg.Interval
	case TriggerNone:
		return false
	default:
		return false
	}
}
