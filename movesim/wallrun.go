package movesim

import (
	"math"

	"github.com/runnervision/freerun/omath"
)

// continueWallRun ends the wall-run when the wall is lost, the character slowed down or started
// dashing.
func (c *tickContext) continueWallRun() {
	side := c.state.WallRun()
	if side == WallNone {
		return
	}
	if _, ok := c.canWallRun(side); !ok {
		c.setMode(c.airMode())
	}
}

// canWallRun returns the wall hit on side if running along it is possible.
func (c *tickContext) canWallRun(side WallSide) (Hit, bool) {
	s := c.state
	if s.IsDashing() || s.HorizontalSpeed() < c.tuning.WallRun.MinSpeed {
		return Hit{}, false
	}
	hit := c.probeWall(side)
	return hit, hit.Hit
}

// tryWallRun starts running along a wall on side.
func (c *tickContext) tryWallRun(side WallSide) bool {
	s, t := c.state, &c.tuning.WallRun
	if c.grounded || s.HasWallRunSinceJump || s.LastWallRunSide == side {
		return false
	}
	hit, ok := c.canWallRun(side)
	if !ok {
		return false
	}
	if a := omath.AngleBetween(omath.Horizontal(s.Velocity), omath.Horizontal(hit.Normal)); a < t.MinAngle || a > t.MaxAngle {
		return false
	}

	vel := omath.Horizontal(s.Velocity).Mul(t.EntryDamping).Add(s.ForwardDirection.Mul(t.EntryImpulse))
	vel[1] = math.Max(s.Velocity.Y(), t.EntryLift)
	s.Velocity = vel

	c.setMode(WallRunning{Side: side})
	s.LastWallRunSide = side
	s.HasWallRunSinceJump = true
	s.TimeSinceWallRunStart = 0
	s.Events.Add(EventWallRunStarted)
	c.sim.debugf("tick %d: wall-run %v started, normal %v", s.Tick, side, hit.Normal)
	return true
}

// jumpOffWall pushes the character off the wall it runs along, towards where the camera looks.
func (c *tickContext) jumpOffWall() {
	s, t := c.state, &c.tuning.WallRun
	cam := omath.SafeNormalize(omath.Horizontal(omath.DirectionVector(s.Facing.Yaw, s.Facing.Pitch)))

	// The angle from the movement axis, folded to at most 90 degrees.
	angle := omath.AngleBetween(s.ForwardDirection, cam)
	if s.ForwardDirection.Dot(cam) < 0 {
		angle = 180 - angle
	}
	mul := math.Max(t.JumpMinForwardScale, angle/90)

	s.Velocity = s.Velocity.Mul(t.JumpDamping).
		Add(cam.Mul(t.JumpForward * mul)).
		Add(omath.Up().Mul(t.JumpUp))

	c.setMode(Airborne{})
	s.Events.Add(EventWallJumped)
}
