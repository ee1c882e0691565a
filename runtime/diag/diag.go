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

// Package diag is the escape hatch for failures a channel cannot surface
// as a Log error without breaking the caller's write path — a purge that
// can't remove a stale backup, an attribute that fails to parse — so those
// failures are reported to a Sink instead. A nil or Discard sink makes
// them silently swallowed.
package diag

import (
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink receives diagnostics the channel cannot surface as a Log error.
// Implementations must be safe to call from the same goroutine that owns
// the channel; nothing in this package requires concurrent-safety beyond
// what the caller already provides.
type Sink interface {
	// Warn reports a recoverable condition, e.g. an unrecognized attribute
	// value falling back to its default.
	Warn(msg string, kv ...any)

	// Error reports a failed best-effort operation, e.g. a purge delete
	// that did not succeed. err is the underlying cause.
	Error(err error, msg string, kv ...any)
}

// Discard is a Sink that drops every diagnostic. It is the default when a
// channel is not given an explicit sink.
var Discard Sink = discard{}

type discard struct{}

func (discard) Warn(string, ...any)         {}
func (discard) Error(error, string, ...any) {}

// zapSink adapts a *zap.SugaredLogger to Sink. kv pairs are sorted by key
// before being attached, the same determinism internalzap.ToZapFields
// gives the encoder layer, so repeated diagnostics with the same
// attributes produce byte-identical lines.
type zapSink struct {
	log *zap.SugaredLogger
}

// NewZapSink wraps an existing zap logger. Passing nil is invalid; use
// Discard instead when no diagnostics are wanted.
func NewZapSink(l *zap.Logger) Sink {
	return &zapSink{log: l.Sugar()}
}

// NewDefaultSink builds a zapSink from a production console encoder,
// writing to stderr — a reasonable default for a library that has no
// opinion on where its host process sends logs.
func NewDefaultSink() Sink {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		zapcore.WarnLevel,
	)
	return &zapSink{log: zap.New(core).Sugar()}
}

func (s *zapSink) Warn(msg string, kv ...any) {
	s.log.Warnw(msg, sortedKV(kv)...)
}

func (s *zapSink) Error(err error, msg string, kv ...any) {
	args := append(sortedKV(kv), "error", err)
	s.log.Errorw(msg, args...)
}

// sortedKV reorders a flat key/value varargs slice by key, mirroring
// internalzap.ToZapFields' deterministic key ordering so diagnostic lines
// don't jitter between runs when callers build kv from a map.
func sortedKV(kv []any) []any {
	if len(kv) < 4 || len(kv)%2 != 0 {
		return kv
	}
	type pair struct {
		key string
		val any
	}
	pairs := make([]pair, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return kv
		}
		pairs = append(pairs, pair{key: k, val: kv[i+1]})
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
	out := make([]any, 0, len(kv))
	for _, p := range pairs {
		out = append(out, p.key, p.val)
	}
	return out
}
