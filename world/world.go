package world

import (
	"iter"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/google/uuid"
	"github.com/runnervision/freerun/movesim"
	"github.com/sasha-s/go-deadlock"
)

// namespace seeds the name-based collider IDs, so the same name always yields the same ID.
var namespace = uuid.MustParse("5d1c7a52-3f1e-4b8a-9a57-2c0f3e6b9d41")

// NewID returns the stable ID of the collider with the given name.
func NewID(name string) movesim.ObjectID {
	return uuid.NewSHA1(namespace, []byte(name))
}

// Collider is a solid axis aligned box in the world.
type Collider struct {
	ID   movesim.ObjectID
	Name string
	Box  cube.BBox
}

// World is a static collision world made of axis aligned boxes. It implements movesim.WorldQuery.
// Colliders are kept in insertion order so that every query visits them in the same order, which
// keeps ties between equally near hits deterministic.
type World struct {
	colliders *orderedmap.OrderedMap[movesim.ObjectID, Collider]

	deadlock.RWMutex
}

// New returns an empty world.
func New() *World {
	return &World{colliders: orderedmap.NewOrderedMap[movesim.ObjectID, Collider]()}
}

// Add adds a collider with the given name, replacing any collider previously added under it.
func (w *World) Add(name string, box cube.BBox) movesim.ObjectID {
	id := NewID(name)

	w.Lock()
	defer w.Unlock()
	w.colliders.Set(id, Collider{ID: id, Name: name, Box: box})
	return id
}

// Remove removes the collider with the given ID. It returns false if there was none.
func (w *World) Remove(id movesim.ObjectID) bool {
	w.Lock()
	defer w.Unlock()
	return w.colliders.Delete(id)
}

// Collider returns the collider with the given ID.
func (w *World) Collider(id movesim.ObjectID) (Collider, bool) {
	w.RLock()
	defer w.RUnlock()
	return w.colliders.Get(id)
}

// Len returns the amount of colliders in the world.
func (w *World) Len() int {
	w.RLock()
	defer w.RUnlock()
	return w.colliders.Len()
}

// Colliders iterates over all colliders in insertion order. The world must not be modified
// during iteration.
func (w *World) Colliders() iter.Seq[Collider] {
	return func(yield func(Collider) bool) {
		w.RLock()
		defer w.RUnlock()
		for el := w.colliders.Front(); el != nil; el = el.Next() {
			if !yield(el.Value) {
				return
			}
		}
	}
}

// Nearby returns the colliders intersecting bb, in insertion order.
func (w *World) Nearby(bb cube.BBox) []Collider {
	var nearby []Collider
	for c := range w.Colliders() {
		if c.Box.IntersectsWith(bb) {
			nearby = append(nearby, c)
		}
	}
	return nearby
}

// Overlapping returns true if bb overlaps any collider. Touching boxes do not overlap.
func (w *World) Overlapping(bb cube.BBox) bool {
	_, ok := w.overlapping(bb)
	return ok
}

func (w *World) overlapping(bb cube.BBox) (Collider, bool) {
	for c := range w.Colliders() {
		if c.Box.IntersectsWith(bb) {
			return c, true
		}
	}
	return Collider{}, false
}

var _ movesim.WorldQuery = (*World)(nil)
