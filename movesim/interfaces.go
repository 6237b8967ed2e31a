package movesim

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ObjectID identifies a piece of world geometry. The zero value means no object.
type ObjectID = uuid.UUID

// Hit is the result of a ray or box cast against the world.
type Hit struct {
	Hit        bool
	StartSolid bool
	// Fraction is the portion of the cast travelled before the hit, 1 when nothing was hit.
	Fraction float64
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	Object   ObjectID
}

// MoveResult is the outcome of a stepped sweep-and-slide move.
type MoveResult struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Fraction float64
	Grounded bool
	Ground   ObjectID
}

// WorldQuery bridges the collision system used for every geometric query of the controller.
// All methods must be read-only and side-effect free.
type WorldQuery interface {
	// CastRay traces a line segment from origin to dest.
	CastRay(origin, dest mgl64.Vec3) Hit
	// CastBox sweeps the local bounds from one point to another. When from equals to, the cast is
	// a pure overlap test and any hit reports StartSolid. The Position of a box hit is the origin of
	// the bounds at the moment of contact.
	CastBox(bounds cube.BBox, from, to mgl64.Vec3) Hit
	// SweepMove moves the hull by velocity*dt, sliding along and stepping up onto geometry no
	// taller than stepHeight.
	SweepMove(hull cube.BBox, from, velocity mgl64.Vec3, dt, stepHeight float64) MoveResult
}

// AudioSink receives one-shot sound cues after a tick. It is never called while replaying.
type AudioSink interface {
	PlayEvent(ev Event, pos mgl64.Vec3)
	SlideTail(volume float64)
}

// CameraSink receives camera hints after a tick. It is never called while replaying.
type CameraSink interface {
	ClimbStarted(wallNormal mgl64.Vec3)
	WallRunTilt(side WallSide)
}
