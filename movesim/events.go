package movesim

import (
	"iter"
	"math/bits"
	"strings"
)

// Event is a one-shot notification raised during a tick.
type Event uint8

const (
	EventJumped Event = iota
	EventLanded
	EventWallRunStarted
	EventWallRunEnded
	EventWallJumped
	EventClimbStarted
	EventClimbPull
	EventClimbEnded
	EventVaultStarted
	EventVaultEnded
	EventDashed
	EventDashEnded
	EventSlideStarted
	EventSlideStopped
	EventFootstep
	EventFootstepRelease
	EventSnapTurned

	eventCount
)

var eventNames = [eventCount]string{
	EventJumped:          "jumped",
	EventLanded:          "landed",
	EventWallRunStarted:  "wallrun_started",
	EventWallRunEnded:    "wallrun_ended",
	EventWallJumped:      "wall_jumped",
	EventClimbStarted:    "climb_started",
	EventClimbPull:       "climb_pull",
	EventClimbEnded:      "climb_ended",
	EventVaultStarted:    "vault_started",
	EventVaultEnded:      "vault_ended",
	EventDashed:          "dashed",
	EventDashEnded:       "dash_ended",
	EventSlideStarted:    "slide_started",
	EventSlideStopped:    "slide_stopped",
	EventFootstep:        "footstep",
	EventFootstepRelease: "footstep_release",
	EventSnapTurned:      "snap_turned",
}

func (e Event) String() string {
	if e >= eventCount {
		return "unknown"
	}
	return eventNames[e]
}

// ParseEvent returns the event with the given name.
func ParseEvent(name string) (Event, bool) {
	for i, n := range eventNames {
		if n == name {
			return Event(i), true
		}
	}
	return 0, false
}

// EventSet is a fixed-capacity set of events raised in one tick.
type EventSet uint32

// Add adds the event to the set. Adding an event twice has no effect.
func (s *EventSet) Add(e Event) {
	*s |= 1 << e
}

// Has returns true if the event was raised.
func (s EventSet) Has(e Event) bool {
	return s&(1<<e) != 0
}

// Len returns the amount of events in the set.
func (s EventSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

// All iterates the events in the set in tag order.
func (s EventSet) All() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for e := Event(0); e < eventCount; e++ {
			if s.Has(e) && !yield(e) {
				return
			}
		}
	}
}

func (s EventSet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for e := range s.All() {
		if b.Len() > 1 {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}
