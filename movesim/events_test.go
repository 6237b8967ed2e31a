package movesim

import (
	"slices"
	"testing"
)

func TestEventSet(t *testing.T) {
	var set EventSet
	set.Add(EventVaultStarted)
	set.Add(EventJumped)
	set.Add(EventVaultStarted)

	if set.Len() != 2 {
		t.Fatalf("expected 2 events, got %d", set.Len())
	}
	if !set.Has(EventJumped) || !set.Has(EventVaultStarted) || set.Has(EventLanded) {
		t.Fatalf("unexpected membership in %v", set)
	}
	if got := slices.Collect(set.All()); !slices.Equal(got, []Event{EventJumped, EventVaultStarted}) {
		t.Fatalf("expected events in tag order, got %v", got)
	}
	if got := set.String(); got != "[jumped vault_started]" {
		t.Fatalf("unexpected string %q", got)
	}
	if got := EventSet(0).String(); got != "[]" {
		t.Fatalf("unexpected empty string %q", got)
	}
}

func TestEventSetCapacity(t *testing.T) {
	var set EventSet
	for e := Event(0); e < eventCount; e++ {
		set.Add(e)
	}
	if set.Len() != int(eventCount) {
		t.Fatalf("expected every event to fit in the set, got %d of %d", set.Len(), eventCount)
	}
}

func TestParseEvent(t *testing.T) {
	for e := Event(0); e < eventCount; e++ {
		got, ok := ParseEvent(e.String())
		if !ok || got != e {
			t.Fatalf("expected %v to parse back, got %v (%v)", e, got, ok)
		}
	}
	if _, ok := ParseEvent("teleported"); ok {
		t.Fatalf("expected unknown event name to fail")
	}
	if Event(200).String() != "unknown" {
		t.Fatalf("expected out of range event to be unknown")
	}
}
