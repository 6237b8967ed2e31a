package movesim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/omath"
)

// updateMaxSpeed ramps the current max speed towards MaxSpeed while moving and back towards
// StartingSpeed while idle or turning sharply.
func (c *tickContext) updateMaxSpeed() {
	s, l := c.state, &c.tuning.Locomotion
	if c.wishDir != (mgl64.Vec3{}) && !c.sharpTurn() {
		s.CurrentMaxSpeed = approach(s.CurrentMaxSpeed, l.MaxSpeed, l.SpeedGrowthRate*c.dt)
		return
	}
	s.CurrentMaxSpeed = approach(s.CurrentMaxSpeed, l.StartingSpeed, l.SpeedShrinkRate*c.dt)
}

// sharpTurn returns true if the move intent points further than SharpTurnAngle from the velocity.
func (c *tickContext) sharpTurn() bool {
	vel := omath.Horizontal(c.state.Velocity)
	if vel.Len() < speedEpsilon {
		return false
	}
	return omath.AngleBetween(vel, c.wishDir) > c.tuning.Locomotion.SharpTurnAngle
}

// approach moves current towards target by the given fraction of the remaining distance.
func approach(current, target, fraction float64) float64 {
	return omath.Lerp(current, target, omath.ClampFloat(fraction, 0, 1))
}

// integrate applies acceleration and friction on the ground, or gravity in the air.
func (c *tickContext) integrate() {
	s, l := c.state, &c.tuning.Locomotion
	if c.grounded {
		s.Velocity = c.accelerate(s.Velocity)
		friction := l.Friction
		if s.Sliding {
			friction = c.tuning.Slide.Friction
		}
		s.Velocity = c.applyFriction(s.Velocity, friction)
		return
	}

	gravity := l.Gravity
	if s.WallRun() != WallNone {
		gravity *= c.tuning.WallRun.GravityScale
	}
	s.Velocity = s.Velocity.Sub(omath.Up().Mul(gravity * c.dt))
}

// accelerate steers vel towards the wish velocity, capped at the current max speed.
func (c *tickContext) accelerate(vel mgl64.Vec3) mgl64.Vec3 {
	l := &c.tuning.Locomotion
	speed := c.wishSpeed
	if limit := c.state.CurrentMaxSpeed; limit > 0 && speed > limit {
		speed = limit
	}
	return omath.LerpVec(vel, c.wishDir.Mul(speed), omath.ClampFloat(c.dt*l.AccelerationScale*l.Acceleration, 0, 1))
}

// applyFriction bleeds off speed. Speeds under StopSpeed bleed off at the StopSpeed rate.
func (c *tickContext) applyFriction(vel mgl64.Vec3, friction float64) mgl64.Vec3 {
	speed := vel.Len()
	if speed < 0.1 {
		return vel
	}
	control := math.Max(speed, c.tuning.Locomotion.StopSpeed)
	newSpeed := math.Max(speed-control*c.dt*friction, 0)
	if newSpeed == speed {
		return vel
	}
	return vel.Mul(newSpeed / speed)
}

func (c *tickContext) canJump() bool {
	s := c.state
	return c.grounded && !s.IsDashing() && s.WallRun() == WallNone
}

// tryJump launches the character off the ground.
func (c *tickContext) tryJump() bool {
	if !c.canJump() {
		return false
	}
	s := c.state
	s.Velocity = s.Velocity.Add(omath.Up().Mul(c.tuning.Locomotion.JumpSpeed))
	s.Events.Add(EventJumped)

	// The jump leaves the ground this tick, so stick-to-ground must not pull the character back.
	c.grounded = false
	s.Ground = ObjectID{}
	c.setMode(Airborne{})
	return true
}

// resolveMove hands the velocity to the world for a stepped sweep-and-slide move.
func (c *tickContext) resolveMove() {
	s := c.state
	w := c.sim.World
	if w == nil {
		s.Position = s.Position.Add(s.Velocity.Mul(c.dt))
		return
	}

	res := w.SweepMove(Hull(), s.Position, s.Velocity, c.dt, c.tuning.Locomotion.StepSize)
	pos := res.Position
	if c.grounded && c.tuning.Locomotion.StickToGround && res.Velocity.Y() <= 0 {
		pos = c.stickToGround(pos)
	}
	s.Position = pos
	s.Velocity = res.Velocity
}

// stickToGround snaps pos down onto walkable ground within StepSize.
func (c *tickContext) stickToGround(pos mgl64.Vec3) mgl64.Vec3 {
	w := c.sim.World
	l := &c.tuning.Locomotion

	// See how far up we can go without getting stuck, then trace down from there.
	up := w.CastBox(Hull(), pos, pos.Add(omath.Up().Mul(GroundProbeLift)))
	start := pos.Add(omath.Up().Mul(GroundProbeLift * up.Fraction))
	if up.StartSolid {
		return pos
	}
	end := pos.Sub(omath.Up().Mul(l.StepSize))

	down := w.CastBox(Hull(), start, end)
	switch {
	case !down.Hit, down.StartSolid, down.Fraction <= 0, down.Fraction >= 1:
		return pos
	case omath.AngleBetween(omath.Up(), down.Normal) > l.GroundAngle:
		return pos
	}
	return down.Position
}
