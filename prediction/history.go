package prediction

import "github.com/runnervision/freerun/movesim"

// Frame is a predicted tick: the input it was simulated with and the state after it.
type Frame struct {
	Tick  uint64
	Input movesim.InputState
	State movesim.MovementState
}

// History is a fixed-size circular buffer of predicted frames, ordered by tick. Once full, adding a
// frame overwrites the oldest one.
type History struct {
	buffer   []Frame
	capacity int
	head     int // Points to the next write position
	size     int
}

// NewHistory creates a new history holding at most capacity frames.
func NewHistory(capacity int) *History {
	capacity = max(capacity, 1)
	return &History{
		buffer:   make([]Frame, capacity),
		capacity: capacity,
	}
}

// Add appends a frame. Frames must be added in increasing tick order.
func (h *History) Add(f Frame) {
	h.buffer[h.head] = f
	h.head = (h.head + 1) % h.capacity
	if h.size < h.capacity {
		h.size++
	}
}

// index returns the buffer index of the i-th oldest frame.
func (h *History) index(i int) int {
	return (h.head - h.size + i + h.capacity) % h.capacity
}

// Get retrieves the frame of a tick, searching backwards from the most recent one.
func (h *History) Get(tick uint64) (Frame, bool) {
	for i := h.size - 1; i >= 0; i-- {
		f := h.buffer[h.index(i)]
		if f.Tick == tick {
			return f, true
		}
		if f.Tick < tick {
			break
		}
	}
	return Frame{}, false
}

// After returns the frames with a tick greater than tick, oldest first.
func (h *History) After(tick uint64) []Frame {
	var frames []Frame
	for i := range h.size {
		if f := h.buffer[h.index(i)]; f.Tick > tick {
			frames = append(frames, f)
		}
	}
	return frames
}

// DropThrough removes every frame with a tick up to and including tick.
func (h *History) DropThrough(tick uint64) {
	for h.size > 0 && h.buffer[h.index(0)].Tick <= tick {
		h.buffer[h.index(0)] = Frame{}
		h.size--
	}
}

// Latest returns the most recently added frame.
func (h *History) Latest() (Frame, bool) {
	if h.size == 0 {
		return Frame{}, false
	}
	return h.buffer[h.index(h.size-1)], true
}

// Size returns the current number of frames in the history.
func (h *History) Size() int {
	return h.size
}

// Capacity returns the maximum number of frames held.
func (h *History) Capacity() int {
	return h.capacity
}

// Clear removes all frames.
func (h *History) Clear() {
	clear(h.buffer)
	h.head, h.size = 0, 0
}
