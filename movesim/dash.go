package movesim

import "github.com/runnervision/freerun/omath"

// shouldDash returns true if jumping should dash sideways instead.
func (c *tickContext) shouldDash() bool {
	return c.grounded && !c.input.Forward && (c.input.Left || c.input.Right)
}

// tryDash bursts sideways if the cooldown elapsed.
func (c *tickContext) tryDash() bool {
	s, t := c.state, &c.tuning.Dash
	if s.IsDashing() || s.TimeSinceDash <= t.Cooldown {
		return false
	}

	side, dir := DashLeft, omath.LeftVector(s.Facing.Yaw)
	if !c.input.Left {
		side, dir = DashRight, dir.Mul(-1)
	}
	s.Velocity = s.Velocity.Add(dir.Mul(t.Impulse))
	s.CurrentMaxSpeed += t.SpeedBoost
	s.TimeSinceDash = 0
	s.Dashing = side
	s.Events.Add(EventDashed)
	return true
}

// updateDash expires the dash flag.
func (c *tickContext) updateDash() {
	s := c.state
	if s.IsDashing() && s.TimeSinceDash > c.tuning.Dash.Duration {
		s.Dashing = DashNone
		s.Events.Add(EventDashEnded)
	}
}
