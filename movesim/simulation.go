package movesim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/assert"
	"github.com/runnervision/freerun/omath"
)

// tickContext carries the values derived once per tick and shared by every ability update.
type tickContext struct {
	sim    *Simulator
	state  *MovementState
	input  InputState
	tuning *Tuning
	dt     float64

	// wishDir is the world space direction of the move intent, zero when idle.
	wishDir   mgl64.Vec3
	wishSpeed float64

	// grounded is the result of this tick's ground probe.
	grounded bool

	// slideTail is the volume of the fading slide loop, zero once it has finished.
	slideTail float64
}

// Simulate runs a movement simulation tick and returns the resulting state. Events raised during
// the tick are forwarded to the audio and camera sinks if present.
func (s *Simulator) Simulate(state *MovementState, input InputState) SimulationResult {
	if state == nil {
		return SimulationResult{}
	}
	result := s.simulate(state, input)
	s.dispatch(state, result)
	return result
}

// SimulateReplay runs the same tick as Simulate without touching the audio and camera sinks. It is
// used when re-running buffered inputs to correct a prediction.
func (s *Simulator) SimulateReplay(state *MovementState, input InputState) SimulationResult {
	if state == nil {
		return SimulationResult{}
	}
	return s.simulate(state, input)
}

func (s *Simulator) simulate(state *MovementState, input InputState) SimulationResult {
	ctx := &tickContext{
		sim:    s,
		state:  state,
		input:  input,
		tuning: &s.Tuning,
		dt:     s.tickDelta(),

		grounded: state.Grounded(),
	}
	outcome := ctx.run()
	if s.Options.CheckInvariants {
		checkInvariants(state, &s.Tuning)
	}
	return ctx.result(outcome)
}

// run executes the tick in its fixed order. Both short-circuit paths still complete the tick.
func (c *tickContext) run() SimulationOutcome {
	s := c.state
	s.Events = 0
	s.Tick++
	s.LastPosition, s.LastVelocity = s.Position, s.Velocity
	if s.Mode == nil {
		s.Mode = Airborne{}
	}

	c.updateSnapTurn()
	if s.Noclip {
		c.noclip()
		return SimulationOutcomeNoclip
	}
	if _, ok := s.Mode.(Vaulting); ok {
		c.progressVault()
		return SimulationOutcomeVault
	}

	c.continueWallRun()
	c.computeWish()
	c.updateMaxSpeed()
	c.updateGround()
	c.integrate()

	if c.input.JumpReleased {
		c.releaseJump()
	}
	if c.input.JumpPressed {
		c.pressJump()
	}
	if c.input.JumpDown && !s.HasParkouredSinceJump {
		c.holdJump()
	}

	c.updateDuckSlide()
	c.advanceTimers()
	c.updateClimb()
	c.resolveMove()
	c.clampMaxSpeed()
	c.updateForwardDirection()
	c.updateFootsteps()
	return SimulationOutcomeNormal
}

// computeWish rotates the normalised move intent by the view yaw into world space.
func (c *tickContext) computeWish() {
	move := omath.SafeNormalize(c.input.MoveVector)
	if move == (mgl64.Vec3{}) {
		c.wishDir, c.wishSpeed = mgl64.Vec3{}, 0
		return
	}
	yaw := c.state.Facing.Yaw
	world := omath.ForwardVector(yaw).Mul(move.X()).
		Add(omath.LeftVector(yaw).Mul(move.Y())).
		Add(omath.Up().Mul(move.Z()))

	c.wishDir = omath.SafeNormalize(world)
	c.wishSpeed = c.state.CurrentMaxSpeed
}

// releaseJump clears the per-jump debounce flags.
func (c *tickContext) releaseJump() {
	s := c.state
	s.HasWallRunSinceJump = false
	if s.Grounded() {
		s.HasParkouredSinceJump = false
	}
}

// pressJump attempts a dash, then a wall push-off, then a regular jump.
func (c *tickContext) pressJump() {
	if c.shouldDash() {
		c.tryDash()
		return
	}
	if c.state.WallRun() != WallNone {
		c.jumpOffWall()
		return
	}
	c.tryJump()
}

// holdJump attempts to catch a wall on either side, falling back to a vault.
func (c *tickContext) holdJump() {
	if c.tryWallRun(WallLeft) || c.tryWallRun(WallRight) {
		return
	}
	c.tryVault()
}

// advanceTimers moves every ability timer forward by one tick.
func (c *tickContext) advanceTimers() {
	s := c.state
	s.TimeSinceDash += c.dt
	s.TimeSinceClimbActivity += c.dt
	s.TimeSinceWallRunStart += c.dt
	s.TimeSinceSlideStopped += c.dt
	s.TimeSinceFootstep += c.dt
	s.TimeSinceFootstepRelease += c.dt
	c.updateDash()
}

func (c *tickContext) clampMaxSpeed() {
	s := c.state
	if s.UnlimitedSprint {
		s.CurrentMaxSpeed = c.tuning.Locomotion.MaxSpeed
		return
	}
	s.CurrentMaxSpeed = min(s.CurrentMaxSpeed, c.tuning.Locomotion.MaxSpeed)
}

// updateForwardDirection caches the horizontal direction of travel.
func (c *tickContext) updateForwardDirection() {
	if dir := omath.SafeNormalize(omath.Horizontal(c.state.Velocity)); dir != (mgl64.Vec3{}) {
		c.state.ForwardDirection = dir
	}
}

// updateSnapTurn handles the snap-turn trigger and derives the facing for this tick.
func (c *tickContext) updateSnapTurn() {
	s := c.state
	if c.input.SnapTurn {
		s.SnapYaw = omath.WrapYawDelta(s.SnapYaw + 180)
		s.Events.Add(EventSnapTurned)
	}
	s.Facing = Angles{
		Pitch: c.input.View.Pitch,
		Yaw:   omath.WrapYawDelta(c.input.View.Yaw + s.SnapYaw),
	}
}

// noclip flies along the full view rotation, ignoring all collision.
func (c *tickContext) noclip() {
	s := c.state
	move := omath.SafeNormalize(c.input.MoveVector)
	view := omath.DirectionVector(s.Facing.Yaw, s.Facing.Pitch)
	left := omath.LeftVector(s.Facing.Yaw)
	up := view.Cross(left)

	dir := view.Mul(move.X()).Add(left.Mul(move.Y())).Add(up.Mul(move.Z()))
	s.Position = s.Position.Add(dir.Mul(c.tuning.Debug.NoclipSpeed * c.dt))
	s.Velocity = mgl64.Vec3{}
}

// setMode transitions to m, raising the end events of the mode being left.
func (c *tickContext) setMode(m Mode) {
	s := c.state
	prev := KindOf(s.Mode)
	if prev == m.Kind() {
		s.Mode = m
		return
	}
	switch prev {
	case ModeWallRunning:
		s.Events.Add(EventWallRunEnded)
	case ModeClimbing:
		s.Events.Add(EventClimbEnded)
	case ModeVaulting:
		s.Events.Add(EventVaultEnded)
	}
	c.sim.debugf("tick %d: mode %v -> %v", s.Tick, prev, m.Kind())
	s.Mode = m
}

// airMode returns the mode to fall back to when leaving an ability.
func (c *tickContext) airMode() Mode {
	if c.grounded {
		return Grounded{}
	}
	return Airborne{}
}

func (c *tickContext) result(outcome SimulationOutcome) SimulationResult {
	s := c.state
	return SimulationResult{
		Position:        s.Position,
		Velocity:        s.Velocity,
		Mode:            s.Mode,
		Grounded:        s.Grounded(),
		Events:          s.Events,
		SlideTailVolume: c.slideTail,
		Outcome:         outcome,
	}
}

// dispatch forwards the tick's events to the optional sinks.
func (s *Simulator) dispatch(state *MovementState, result SimulationResult) {
	if s.Audio != nil {
		for ev := range result.Events.All() {
			s.Audio.PlayEvent(ev, state.Position)
		}
		if result.SlideTailVolume > 0 {
			s.Audio.SlideTail(result.SlideTailVolume)
		}
	}
	if s.Camera != nil {
		if c, ok := state.Mode.(Climbing); ok && result.Events.Has(EventClimbStarted) {
			s.Camera.ClimbStarted(c.WallNormal)
		}
		if result.Events.Has(EventWallRunStarted) || result.Events.Has(EventWallRunEnded) {
			s.Camera.WallRunTilt(state.WallRun())
		}
	}
}

// checkInvariants asserts the structural invariants of the state.
func checkInvariants(s *MovementState, t *Tuning) {
	assert.InRange("climb charges", s.ClimbCharges, 0, t.Climb.MaxCharges)
	if v, ok := s.Mode.(Vaulting); ok {
		assert.InRange("vault progress", v.Progress, 0, 1)
		assert.IsTrue(v.Kind != VaultNone, "vaulting without a vault kind")
	}
	if w, ok := s.Mode.(WallRunning); ok {
		assert.IsTrue(w.Side != WallNone, "wall-running without a side")
	}
	assert.Finite("position", s.Position)
	assert.Finite("velocity", s.Velocity)
}
