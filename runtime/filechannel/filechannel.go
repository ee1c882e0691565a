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

// Package filechannel implements the orchestrator: it wires the attribute
// bag, size parser, byte sink, compressor stack, rotate policy, archive
// strategy and purge strategy into the public Open/Close/Log contract.
//
// A Channel is not internally synchronized: it presents a single-owner
// contract, and at most one logical writer may call any of its methods at
// a time. Concurrent callers must serialize through an external mutex —
// duplicating that lock inside the channel would double its cost for no
// correctness gain when the caller already serializes access.
package filechannel

import (
	"os"
	"time"

	"github.com/dxlogs/filechannel/apis"
	"github.com/dxlogs/filechannel/runtime/archive"
	"github.com/dxlogs/filechannel/runtime/attrbag"
	"github.com/dxlogs/filechannel/runtime/codec"
	"github.com/dxlogs/filechannel/runtime/diag"
	"github.com/dxlogs/filechannel/runtime/filesink"
	"github.com/dxlogs/filechannel/runtime/purge"
	"github.com/dxlogs/filechannel/runtime/rotpolicy"
	"github.com/dxlogs/filechannel/runtime/sizefmt"
)

// defaultFileMode is the permission used when none is supplied.
const defaultFileMode = os.FileMode(0o640)

// Channel is the rotating, archiving, compressing file log channel.
type Channel struct {
	path  string
	mode  os.FileMode
	attrs *attrbag.Bag
	clock apis.Clock
	diag  diag.Sink

	cfg   parsedConfig
	dirty bool

	sink *filesink.Sink
	cdc  codec.Codec

	bytesWritten uint64
	openedAt     time.Time
	rotationSeq  uint64
}

var _ apis.Channel = (*Channel)(nil)

// parsedConfig holds the cached, typed form of the attribute bag: size,
// interval and codec values are parsed once on mutation rather than on
// every log call, since re-parsing per record is both a performance cost
// and a correctness hazard (parse results could drift between calls).
type parsedConfig struct {
	codecMode codec.Mode
	rotate    rotpolicy.Config
	archive   archive.Strategy
	purge     purge.Config
}

// Option configures a Channel at construction time.
type Option func(*Channel)

// WithClock overrides the wall clock a Channel consults for interval
// rotation and timestamp archive names. Tests use this to inject a fake
// clock instead of sleeping in real time.
func WithClock(c apis.Clock) Option {
	return func(ch *Channel) { ch.clock = c }
}

// WithDiagSink overrides the sink non-fatal diagnostics (purge failures,
// unrecognized attribute values) are reported to. The default is
// diag.Discard: diagnostics are swallowed if no sink is given.
func WithDiagSink(s diag.Sink) Option {
	return func(ch *Channel) { ch.diag = s }
}

// WithFileMode overrides the permission bits used when creating the
// primary file and its rotated siblings.
func WithFileMode(mode os.FileMode) Option {
	return func(ch *Channel) { ch.mode = mode }
}

// New constructs a Channel over path. The channel is not opened until the
// first Open or Log call.
func New(path string, opts ...Option) *Channel {
	ch := &Channel{
		path:  path,
		mode:  defaultFileMode,
		clock: apis.SystemClock{},
		diag:  diag.Discard,
		dirty: true,
	}
	ch.attrs = attrbag.New(func(string, string) { ch.dirty = true })
	for _, opt := range opts {
		opt(ch)
	}
	return ch
}

// Open ensures the channel has an active writer. It is idempotent.
func (ch *Channel) Open() error {
	if ch.sink != nil {
		return nil
	}
	ch.refreshConfig()

	// Stat before creating the file: a pre-existing primary (e.g. after a
	// process restart) seeds bytesWritten/openedAt from what is actually on
	// disk, while a brand-new primary takes openedAt from the injected
	// clock rather than the OS's real wall-clock mtime, so interval
	// rotation stays deterministic under a fake clock in tests.
	preexisting, existed, err := filesink.Stat(ch.path)
	if err != nil {
		return err
	}

	sink, err := filesink.Open(ch.path, ch.mode)
	if err != nil {
		return err
	}

	cdc, err := codec.New(ch.cfg.codecMode, sink)
	if err != nil {
		_ = sink.Close()
		return err
	}

	ch.sink = sink
	ch.cdc = cdc
	if existed {
		ch.bytesWritten = preexisting.Size
		ch.openedAt = preexisting.MTime
	} else {
		ch.bytesWritten = 0
		ch.openedAt = ch.clock.Now()
	}
	return nil
}

// Close finalizes the active writer, if any. Close is idempotent and
// attempts every finalization step even if an earlier one fails,
// returning the first error.
func (ch *Channel) Close() error {
	if ch.sink == nil {
		return nil
	}

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	record(ch.cdc.Finalize())
	record(ch.sink.Flush())
	record(ch.sink.Close())

	ch.sink = nil
	ch.cdc = nil
	return firstErr
}

// Log formats msg, rotates first if the rotate policy says so, then writes
// the record through the active compressor.
func (ch *Channel) Log(msg apis.Message) error {
	if ch.sink == nil {
		if err := ch.Open(); err != nil {
			return err
		}
	} else {
		ch.refreshConfig()
	}

	record := []byte(msg.Text() + "\n")
	now := ch.clock.Now()

	st := rotpolicy.State{BytesWritten: ch.bytesWritten, OpenedAt: ch.openedAt}
	if rotpolicy.ShouldRotate(ch.cfg.rotate, st, now, len(record)) {
		if err := ch.rotate(now); err != nil {
			return err
		}
	}

	n, err := ch.cdc.Write(record)
	ch.bytesWritten += uint64(n)
	if err != nil {
		return err
	}
	return nil
}

// rotate finalizes the current writer, archives the primary, purges old
// archives, then opens a fresh primary. A failure in any step but purge
// transitions the channel to Closed and surfaces the error; purge
// failures are reported to the diagnostic sink but the writer remains
// open.
func (ch *Channel) rotate(now time.Time) error {
	finalizeErr := ch.cdc.Finalize()
	closeErr := ch.sink.Close()
	ch.closeBroken()
	if finalizeErr != nil {
		return finalizeErr
	}
	if closeErr != nil {
		return closeErr
	}

	if _, err := ch.cfg.archive.Rotate(ch.path, now); err != nil {
		return err
	}

	dir, base := archive.SplitDirBase(ch.path)
	if err := purge.Apply(dir, base, ch.cfg.purge, ch.cfg.archive.Mode, now); err != nil {
		ch.diag.Error(err, "purge failed", "path", ch.path)
	}

	sink, err := filesink.Open(ch.path, ch.mode)
	if err != nil {
		return err
	}
	cdc, err := codec.New(ch.cfg.codecMode, sink)
	if err != nil {
		_ = sink.Close()
		return err
	}

	ch.sink = sink
	ch.cdc = cdc
	ch.bytesWritten = 0
	ch.openedAt = now
	ch.rotationSeq++
	return nil
}

// closeBroken drops the writer references without attempting further
// finalization. rotate calls it right after its own finalize and close
// steps, whether or not they succeeded, so the channel reads as Closed
// until a fresh writer is in place.
func (ch *Channel) closeBroken() {
	ch.sink = nil
	ch.cdc = nil
}

// PutAttr sets a configuration attribute.
func (ch *Channel) PutAttr(key, value string) {
	ch.attrs.Put(key, value)
}

// GetAttr returns a previously set attribute and whether it was set.
func (ch *Channel) GetAttr(key string) (string, bool) {
	return ch.attrs.Get(key)
}

// GetPath returns the primary file path.
func (ch *Channel) GetPath() string {
	return ch.path
}

// GetSize returns the primary file's current on-disk size, or 0 if it
// does not exist. Note this may differ momentarily from bytesWritten when
// compression is active, since bytesWritten counts logical bytes fed to
// the codec while GetSize reports what has actually reached disk.
func (ch *Channel) GetSize() uint64 {
	size, err := filesink.CurrentSize(ch.path)
	if err != nil {
		ch.diag.Error(err, "stat failed", "path", ch.path)
		return 0
	}
	return size
}

// GetLastWriteTime returns the primary file's modification time as
// seconds since the epoch, or -1 if it does not exist.
func (ch *Channel) GetLastWriteTime() int64 {
	info, ok, err := filesink.Stat(ch.path)
	if err != nil {
		ch.diag.Error(err, "stat failed", "path", ch.path)
		return -1
	}
	if !ok {
		return -1
	}
	return info.MTime.Unix()
}

// refreshConfig re-derives parsedConfig from the attribute bag. It is a
// no-op unless the bag has been mutated since the last refresh.
func (ch *Channel) refreshConfig() {
	if !ch.dirty {
		return
	}
	ch.dirty = false

	var cfg parsedConfig

	mode, ok := codec.ParseMode(ch.attrs.GetOr(attrbag.KeyCompressionMode, string(codec.ModeNone)))
	if !ok {
		ch.warnFallback(attrbag.KeyCompressionMode)
	}
	cfg.codecMode = mode

	trigger, ok := rotpolicy.ParseTrigger(ch.attrs.GetOr(attrbag.KeyRotate, string(rotpolicy.TriggerNone)))
	if !ok {
		ch.warnFallback(attrbag.KeyRotate)
	}
	cfg.rotate.Trigger = trigger

	switch trigger {
	case rotpolicy.TriggerSize:
		if raw, has := ch.attrs.Get(attrbag.KeyRotateSize); has {
			if n, err := sizefmt.ParseSize(raw); err != nil {
				ch.diag.Error(err, "invalid rotate.size, rotation disabled")
			} else {
				cfg.rotate.SizeThreshold = n
			}
		}
	case rotpolicy.TriggerInterval:
		if raw, has := ch.attrs.Get(attrbag.KeyRotateInterval); has {
			if secs, err := sizefmt.ParseInterval(raw); err != nil {
				ch.diag.Error(err, "invalid rotate.interval, rotation disabled")
			} else {
				cfg.rotate.Interval = time.Duration(secs) * time.Second
			}
		}
	}

	amode, ok := archive.ParseMode(ch.attrs.GetOr(attrbag.KeyArchive, string(archive.ModeNone)))
	if !ok {
		ch.warnFallback(attrbag.KeyArchive)
	}
	times, ok := archive.ParseTimes(ch.attrs.GetOr(attrbag.KeyTimes, string(archive.TimesUTC)))
	if !ok {
		ch.warnFallback(attrbag.KeyTimes)
	}
	cfg.archive = archive.Strategy{Mode: amode, Times: times}

	pcfg, ok := purge.ParseConfig(ch.attrs.GetOr(attrbag.KeyPurge, string(purge.ModeNone)))
	if !ok {
		ch.warnFallback(attrbag.KeyPurge)
	}
	cfg.purge = pcfg

	ch.cfg = cfg
}

func (ch *Channel) warnFallback(key string) {
	value, _ := ch.attrs.Get(key)
	ch.diag.Warn("unrecognized attribute value, falling back to default", "key", key, "value", value)
}
