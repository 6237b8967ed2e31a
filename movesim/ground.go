package movesim

import "github.com/runnervision/freerun/omath"

// probeGround sweeps the hull a short distance down from just above the feet.
func (c *tickContext) probeGround() (Hit, bool) {
	s, l := c.state, &c.tuning.Locomotion
	if c.sim.World == nil || s.Velocity.Y() > GroundProbeMaxRise {
		return Hit{}, false
	}

	from := s.Position.Add(omath.Up().Mul(GroundProbeLift))
	to := s.Position.Sub(omath.Up().Mul(GroundProbeDepth))
	hit := c.sim.World.CastBox(Hull(), from, to)
	if !hit.Hit || hit.StartSolid {
		return Hit{}, false
	}
	if omath.AngleBetween(omath.Up(), hit.Normal) > l.GroundAngle {
		return Hit{}, false
	}
	return hit, true
}

// updateGround resolves this tick's ground state and runs the landing transition.
func (c *tickContext) updateGround() {
	s := c.state
	wasGrounded := c.grounded

	hit, ok := c.probeGround()
	if !ok {
		c.grounded = false
		s.Ground = ObjectID{}
		if s.Kind() == ModeGrounded {
			c.setMode(Airborne{})
		}
		return
	}

	c.grounded = true
	s.Ground = hit.Object
	if !wasGrounded {
		c.land()
	}
}

// land runs the transition of ground newly appearing under the character.
func (c *tickContext) land() {
	s, l := c.state, &c.tuning.Locomotion
	s.Events.Add(EventLanded)
	s.Velocity[1] = 0
	c.setMode(Grounded{})

	s.HasParkouredSinceJump = false
	s.HasWallRunSinceJump = false
	s.LastWallRunSide = WallNone
	s.ClimbCharges = 0

	if s.HorizontalSpeed() > l.LandingBonusMinSpeed {
		s.CurrentMaxSpeed += l.LandingSpeedBonus
	}
	c.sim.debugf("tick %d: landed at %v", s.Tick, s.Position)
}
