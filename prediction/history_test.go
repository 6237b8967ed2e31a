package prediction

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func frames(h *History) []uint64 {
	var ticks []uint64
	for _, f := range h.After(0) {
		ticks = append(ticks, f.Tick)
	}
	return ticks
}

func TestHistoryOverwritesOldest(t *testing.T) {
	h := NewHistory(3)
	for tick := uint64(1); tick <= 5; tick++ {
		h.Add(Frame{Tick: tick})
	}

	require.Equal(t, 3, h.Size())
	require.Equal(t, 3, h.Capacity())
	require.Equal(t, []uint64{3, 4, 5}, frames(h))

	_, ok := h.Get(2)
	require.False(t, ok, "evicted frame must be gone")
	f, ok := h.Get(4)
	require.True(t, ok)
	require.EqualValues(t, 4, f.Tick)

	latest, ok := h.Latest()
	require.True(t, ok)
	require.EqualValues(t, 5, latest.Tick)
}

func TestHistoryDropThrough(t *testing.T) {
	h := NewHistory(8)
	for tick := uint64(10); tick < 15; tick++ {
		h.Add(Frame{Tick: tick})
	}

	h.DropThrough(12)
	require.Equal(t, []uint64{13, 14}, frames(h))
	require.Len(t, h.After(13), 1)

	h.DropThrough(100)
	require.Zero(t, h.Size())
	_, ok := h.Latest()
	require.False(t, ok)

	// The buffer keeps working after being emptied.
	h.Add(Frame{Tick: 20})
	require.Equal(t, []uint64{20}, frames(h))
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(0)
	require.Equal(t, 1, h.Capacity())

	h.Add(Frame{Tick: 1})
	h.Clear()
	require.Zero(t, h.Size())
	_, ok := h.Get(1)
	require.False(t, ok)
}
