package world

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/movesim"
	"github.com/runnervision/freerun/omath"
)

const (
	// collisionThreshold is the velocity difference above which an axis counts as blocked.
	collisionThreshold = 1e-5
	// restProbe is how far below the hull support is looked for.
	restProbe = 0.01
)

// SweepMove moves the hull by velocity*dt, clipping against colliders one axis at a time in the
// order Y, X, Z. A horizontally blocked hull resting on ground also tries stepping up by at most
// stepHeight, and keeps the step if it gets further. Blocked velocity components are zeroed.
func (w *World) SweepMove(hull cube.BBox, from, velocity mgl64.Vec3, dt, stepHeight float64) movesim.MoveResult {
	delta := velocity.Mul(dt)
	collisionBB := hull.Translate(from)
	nearby := w.Nearby(collisionBB.Extend(delta).Extend(mgl64.Vec3{0, stepHeight}).Grow(1))
	boxes := make([]cube.BBox, len(nearby))
	for i, c := range nearby {
		boxes[i] = c.Box
	}

	resting := w.Overlapping(collisionBB.Translate(mgl64.Vec3{0, -restProbe}))
	moved, collisionBB := clipAxes(boxes, collisionBB, delta)

	xCollision := math.Abs(delta.X()-moved.X()) >= collisionThreshold
	yCollision := math.Abs(delta.Y()-moved.Y()) >= collisionThreshold
	zCollision := math.Abs(delta.Z()-moved.Z()) >= collisionThreshold
	onGround := resting || (yCollision && delta.Y() < 0)

	if onGround && stepHeight > 0 && (xCollision || zCollision) {
		stepBB := hull.Translate(from)
		stepUp := mgl64.Vec3{0, stepHeight}
		for _, bb := range boxes {
			stepUp = clipCollide(bb, stepBB, stepUp, true)
		}
		stepBB = stepBB.Translate(stepUp)

		stepMoved, stepBB := clipAxes(boxes, stepBB, mgl64.Vec3{delta.X(), 0, delta.Z()})
		stepDown := stepUp.Mul(-1)
		for _, bb := range boxes {
			stepDown = clipCollide(bb, stepBB, stepDown, true)
		}
		stepBB = stepBB.Translate(stepDown)
		stepMoved = stepMoved.Add(stepUp).Add(stepDown)

		if !w.Overlapping(stepBB) && omath.Vec3HzDistSqr(moved) < omath.Vec3HzDistSqr(stepMoved) {
			moved, collisionBB = stepMoved, stepBB
			xCollision = math.Abs(delta.X()-moved.X()) >= collisionThreshold
			zCollision = math.Abs(delta.Z()-moved.Z()) >= collisionThreshold
		}
	}

	clipped := velocity
	if xCollision {
		clipped[0] = 0
	}
	if yCollision {
		clipped[1] = 0
	}
	if zCollision {
		clipped[2] = 0
	}

	result := movesim.MoveResult{
		Position: from.Add(moved),
		Velocity: clipped,
		Fraction: 1,
	}
	if l := delta.Len(); l > omath.Epsilon {
		result.Fraction = omath.ClampFloat(moved.Len()/l, 0, 1)
	}
	if ground, ok := w.overlapping(collisionBB.Translate(mgl64.Vec3{0, -restProbe})); ok && clipped.Y() <= 0 {
		result.Grounded, result.Ground = true, ground.ID
	}
	return result
}

// clipAxes moves bb by delta against boxes, one axis at a time in the order Y, X, Z.
func clipAxes(boxes []cube.BBox, bb cube.BBox, delta mgl64.Vec3) (mgl64.Vec3, cube.BBox) {
	var moved mgl64.Vec3
	for _, axis := range [...]int{1, 0, 2} {
		var v mgl64.Vec3
		v[axis] = delta[axis]
		if v[axis] == 0 {
			continue
		}
		for i := len(boxes) - 1; i >= 0; i-- {
			v = clipCollide(boxes[i], bb, v, false)
		}
		bb = bb.Translate(v)
		moved = moved.Add(v)
	}
	return moved, bb
}
