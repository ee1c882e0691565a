package diag

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDiscard_SwallowsEverything(t *testing.T) {
	// Nothing to assert beyond "does not panic": Discard is the
	// swallowed-if-absent default.
	Discard.Warn("unused attribute", "key", "purge")
	Discard.Error(errors.New("boom"), "purge failed")
}

func TestZapSink_Warn_EmitsMessage(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sink := NewZapSink(zap.New(core))

	sink.Warn("unrecognized archive mode", "value", "bogus")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Message != "unrecognized archive mode" {
		t.Fatalf("Message = %q", entries[0].Message)
	}
}

func TestZapSink_Error_IncludesCause(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sink := NewZapSink(zap.New(core))
	cause := errors.New("disk full")

	sink.Error(cause, "purge delete failed", "path", "app.log.0")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["error"] != "disk full" {
		t.Fatalf("fields[error] = %v, want %q", fields["error"], "disk full")
	}
	if fields["path"] != "app.log.0" {
		t.Fatalf("fields[path] = %v, want %q", fields["path"], "app.log.0")
	}
}

func TestSortedKV_OrdersByKey(t *testing.T) {
	got := sortedKV([]any{"b", 2, "a", 1})
	want := []any{"a", 1, "b", 2}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSortedKV_OddLengthPassesThroughUnsorted(t *testing.T) {
	in := []any{"a", 1, "b"}
	got := sortedKV(in)
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
}
