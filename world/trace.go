package world

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/cube/trace"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/movesim"
	"github.com/runnervision/freerun/omath"
)

// CastRay returns the nearest collider hit by the segment from origin to dest. A segment starting
// inside a collider reports StartSolid.
func (w *World) CastRay(origin, dest mgl64.Vec3) movesim.Hit {
	best := movesim.Hit{Fraction: 1, Position: dest}
	length := dest.Sub(origin).Len()
	if length < omath.Epsilon {
		return best
	}

	for c := range w.Colliders() {
		if c.Box.Vec3Within(origin) {
			return movesim.Hit{Hit: true, StartSolid: true, Position: origin, Object: c.ID}
		}
		res, ok := trace.BBoxIntercept(c.Box, origin, dest)
		if !ok {
			continue
		}
		if f := res.Position().Sub(origin).Len() / length; f < best.Fraction || !best.Hit {
			best = movesim.Hit{
				Hit:      true,
				Fraction: f,
				Position: res.Position(),
				Normal:   faceNormal(res.Face()),
				Object:   c.ID,
			}
		}
	}
	return best
}

// CastBox sweeps bounds from one point to another and returns the first collider touched. When
// from equals to, the cast tests whether bounds placed at from overlaps any collider.
func (w *World) CastBox(bounds cube.BBox, from, to mgl64.Vec3) movesim.Hit {
	if from == to {
		if c, ok := w.overlapping(bounds.Translate(from)); ok {
			return movesim.Hit{Hit: true, StartSolid: true, Position: from, Object: c.ID}
		}
		return movesim.Hit{Fraction: 1, Position: to}
	}

	delta := to.Sub(from)
	moving := bounds.Translate(from)
	best := movesim.Hit{Fraction: 1, Position: to}
	for _, c := range w.Nearby(moving.Extend(delta).Grow(1)) {
		if c.Box.IntersectsWith(moving) {
			return movesim.Hit{Hit: true, StartSolid: true, Position: from, Object: c.ID}
		}
		t, axis, ok := sweptEntry(moving, c.Box, delta)
		if !ok || (best.Hit && t >= best.Fraction) {
			continue
		}

		var normal mgl64.Vec3
		normal[axis] = -math.Copysign(1, delta[axis])
		pos := from.Add(delta.Mul(t))
		// Snap the contact axis to the exact face, so that the box rests on the collider
		// rather than a rounding error inside it.
		if delta[axis] > 0 {
			pos[axis] = c.Box.Min()[axis] - bounds.Max()[axis]
		} else {
			pos[axis] = c.Box.Max()[axis] - bounds.Min()[axis]
		}
		best = movesim.Hit{Hit: true, Fraction: t, Position: pos, Normal: normal, Object: c.ID}
	}
	return best
}

// sweptEntry returns the time in [0, 1] at which moving, translated by delta, first touches
// stationary, and the axis of the touched face. Boxes that only graze each other do not collide.
func sweptEntry(moving, stationary cube.BBox, delta mgl64.Vec3) (float64, int, bool) {
	entry, exit := math.Inf(-1), math.Inf(1)
	axis := -1
	for i := range 3 {
		if delta[i] == 0 {
			if moving.Max()[i] <= stationary.Min()[i]+clipEpsilon || moving.Min()[i] >= stationary.Max()[i]-clipEpsilon {
				return 0, 0, false
			}
			continue
		}
		var near, far float64
		if delta[i] > 0 {
			near = (stationary.Min()[i] - moving.Max()[i]) / delta[i]
			far = (stationary.Max()[i] - moving.Min()[i]) / delta[i]
		} else {
			near = (stationary.Max()[i] - moving.Min()[i]) / delta[i]
			far = (stationary.Min()[i] - moving.Max()[i]) / delta[i]
		}
		if near > entry {
			entry, axis = near, i
		}
		exit = math.Min(exit, far)
	}
	if axis < 0 || entry >= exit || entry < 0 || entry > 1 {
		return 0, 0, false
	}
	return entry, axis, true
}

// faceNormal returns the outward unit normal of a box face.
func faceNormal(f cube.Face) mgl64.Vec3 {
	switch f {
	case cube.FaceDown:
		return mgl64.Vec3{0, -1, 0}
	case cube.FaceUp:
		return mgl64.Vec3{0, 1, 0}
	case cube.FaceNorth:
		return mgl64.Vec3{0, 0, -1}
	case cube.FaceSouth:
		return mgl64.Vec3{0, 0, 1}
	case cube.FaceWest:
		return mgl64.Vec3{-1, 0, 0}
	default:
		return mgl64.Vec3{1, 0, 0}
	}
}
