package movesim

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/omath"
)

// updateClimb runs the climb state machine. Climbing is only possible in the air while no other
// ability drives the character.
func (c *tickContext) updateClimb() {
	s, t := c.state, &c.tuning.Climb
	if c.grounded || s.WallRun() != WallNone || s.Vault() != VaultNone {
		s.TimeSinceClimbActivity = 0
		return
	}

	fwd := omath.ForwardVector(s.Facing.Yaw)
	from := s.Position.Add(omath.Up().Mul(t.ProbeHeight))
	hit := Hit{}
	if c.sim.World != nil {
		hit = c.sim.World.CastRay(from.Add(fwd.Mul(t.ProbeStart)), from.Add(fwd.Mul(t.ProbeEnd)))
	}
	if !c.shouldClimb(hit, fwd) {
		c.stopClimbing()
		return
	}

	if !s.Climbing() {
		c.startClimbing(hit)
	}
	c.pull()
	c.approachClimbTarget()
}

func (c *tickContext) shouldClimb(hit Hit, fwd mgl64.Vec3) bool {
	s, t := c.state, &c.tuning.Climb
	switch {
	case !c.input.JumpDown, s.Velocity.Y() < 0, s.ClimbCharges >= t.MaxCharges:
		return false
	case !hit.Hit, hit.StartSolid:
		return false
	case omath.AngleBetween(omath.Horizontal(hit.Normal), fwd.Mul(-1)) > t.MaxWallAngle:
		return false
	}

	// There must be room to stand past the climbed surface.
	past := hit.Position.Sub(omath.SafeNormalize(omath.Horizontal(hit.Normal)).Mul(t.ClearanceDepth))
	past[1] = s.Position.Y()
	return c.boxClear(columnBox(t.ClearanceRadius, t.ClearanceBottom, t.ClearanceTop), past)
}

func (c *tickContext) startClimbing(hit Hit) {
	s, t := c.state, &c.tuning.Climb
	target := hit.Position.Add(omath.SafeNormalize(omath.Horizontal(hit.Normal)).Mul(t.WallGap))
	c.setMode(Climbing{
		Target:     omath.Horizontal(target),
		WallNormal: hit.Normal,
		EntrySpeed: s.HorizontalSpeed(),
	})
	s.Events.Add(EventClimbStarted)
	c.sim.debugf("tick %d: climb started, %d charges used", s.Tick, s.ClimbCharges)
}

func (c *tickContext) stopClimbing() {
	if c.state.Climbing() {
		c.setMode(c.airMode())
	}
}

// pull damps horizontal velocity and, at a fixed cadence, spends a charge on an upward impulse.
func (c *tickContext) pull() {
	s, t := c.state, &c.tuning.Climb
	climb, _ := s.Mode.(Climbing)

	s.Velocity[0] *= t.HorizontalDamping
	s.Velocity[2] *= t.HorizontalDamping
	if s.TimeSinceClimbActivity <= t.PullInterval {
		return
	}
	boost := math.Min(climb.EntrySpeed*t.BoostScale, t.BoostMax)
	s.Velocity = s.Velocity.Add(omath.Up().Mul(t.PullImpulse + boost))
	s.TimeSinceClimbActivity = 0
	s.ClimbCharges++
	s.Events.Add(EventClimbPull)
}

// approachClimbTarget eases the horizontal position towards the point just off the wall.
func (c *tickContext) approachClimbTarget() {
	s := c.state
	climb, _ := s.Mode.(Climbing)
	eased := omath.LerpVec(omath.Horizontal(s.Position), climb.Target, omath.ClampFloat(c.dt*c.tuning.Climb.EaseRate, 0, 1))
	s.Position = mgl64.Vec3{eased.X(), s.Position.Y(), eased.Z()}
}

// boxClear returns true if bounds placed at pos overlap nothing.
func (c *tickContext) boxClear(bounds cube.BBox, pos mgl64.Vec3) bool {
	if c.sim.World == nil {
		return true
	}
	return !c.sim.World.CastBox(bounds, pos, pos).Hit
}
