package movesim

import (
	"math"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// floorWorld is an infinite floor with its top at y=0.
type floorWorld struct{}

func (floorWorld) CastRay(origin, dest mgl64.Vec3) Hit {
	if origin.Y() < 0 {
		return Hit{Hit: true, StartSolid: true, Position: origin}
	}
	if dest.Y() >= 0 {
		return Hit{Fraction: 1, Position: dest}
	}
	f := origin.Y() / (origin.Y() - dest.Y())
	pos := origin.Add(dest.Sub(origin).Mul(f))
	pos[1] = 0
	return Hit{Hit: true, Fraction: f, Position: pos, Normal: mgl64.Vec3{0, 1, 0}}
}

func (floorWorld) CastBox(bounds cube.BBox, from, to mgl64.Vec3) Hit {
	bottom := from.Y() + bounds.Min().Y()
	if bottom < -1e-9 {
		return Hit{Hit: true, StartSolid: true, Position: from}
	}
	if from == to || to.Y() >= from.Y() || to.Y()+bounds.Min().Y() >= 0 {
		return Hit{Fraction: 1, Position: to}
	}
	f := bottom / (from.Y() - to.Y())
	pos := from.Add(to.Sub(from).Mul(f))
	pos[1] = -bounds.Min().Y()
	return Hit{Hit: true, Fraction: f, Position: pos, Normal: mgl64.Vec3{0, 1, 0}}
}

func (floorWorld) SweepMove(hull cube.BBox, from, velocity mgl64.Vec3, dt, _ float64) MoveResult {
	pos := from.Add(velocity.Mul(dt))
	if pos.Y() < 0 {
		pos[1], velocity[1] = 0, 0
	}
	return MoveResult{Position: pos, Velocity: velocity, Fraction: 1, Grounded: pos.Y() == 0}
}

type recordingAudio struct {
	events []Event
	tails  []float64
}

func (a *recordingAudio) PlayEvent(ev Event, _ mgl64.Vec3) { a.events = append(a.events, ev) }
func (a *recordingAudio) SlideTail(volume float64)        { a.tails = append(a.tails, volume) }

func newFloorSim() *Simulator {
	return &Simulator{
		World:   floorWorld{},
		Tuning:  DefaultTuning(),
		Options: SimulationOptions{CheckInvariants: true},
	}
}

func groundedState(sim *Simulator, vel mgl64.Vec3) *MovementState {
	state := NewMovementState(mgl64.Vec3{}, sim.Tuning)
	state.Mode = Grounded{}
	state.Velocity = vel
	return state
}

func TestSimulateNilState(t *testing.T) {
	sim := newFloorSim()
	if res := sim.Simulate(nil, InputState{}); res != (SimulationResult{}) {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestSimulateSpeedRamp(t *testing.T) {
	sim := newFloorSim()
	state := NewMovementState(mgl64.Vec3{}, sim.Tuning)
	input := InputState{MoveVector: mgl64.Vec3{1, 0, 0}, Forward: true}

	res := sim.Simulate(state, input)
	if !res.Events.Has(EventLanded) || !res.Grounded {
		t.Fatalf("expected spawn tick to land, got %v grounded=%v", res.Events, res.Grounded)
	}

	lastMax, lastSpeed := state.CurrentMaxSpeed, state.HorizontalSpeed()
	for i := 0; i < 600; i++ {
		res = sim.Simulate(state, input)
		if state.CurrentMaxSpeed < lastMax {
			t.Fatalf("tick %d: max speed decreased from %v to %v", i, lastMax, state.CurrentMaxSpeed)
		}
		if state.CurrentMaxSpeed > sim.Tuning.Locomotion.MaxSpeed {
			t.Fatalf("tick %d: max speed %v above cap", i, state.CurrentMaxSpeed)
		}
		speed := state.HorizontalSpeed()
		if speed+1e-9 < lastSpeed {
			t.Fatalf("tick %d: speed decreased from %v to %v", i, lastSpeed, speed)
		}
		if speed > state.CurrentMaxSpeed {
			t.Fatalf("tick %d: speed %v overshoots max speed %v", i, speed, state.CurrentMaxSpeed)
		}
		if math.Abs(state.Velocity.X()) > 1e-9 || state.Velocity.Z() <= 0 {
			t.Fatalf("tick %d: expected velocity along +Z, got %v", i, state.Velocity)
		}
		lastMax, lastSpeed = state.CurrentMaxSpeed, speed
	}
	if sim.Tuning.Locomotion.MaxSpeed-state.CurrentMaxSpeed > 1 {
		t.Fatalf("expected max speed to converge to %v, got %v", sim.Tuning.Locomotion.MaxSpeed, state.CurrentMaxSpeed)
	}
}

func TestSimulateIdleDecaysMaxSpeed(t *testing.T) {
	sim := newFloorSim()
	state := groundedState(sim, mgl64.Vec3{})
	state.CurrentMaxSpeed = sim.Tuning.Locomotion.MaxSpeed

	for i := 0; i < 120; i++ {
		sim.Simulate(state, InputState{})
	}
	if d := state.CurrentMaxSpeed - sim.Tuning.Locomotion.StartingSpeed; d < 0 || d > 1 {
		t.Fatalf("expected max speed to decay to starting speed, got %v", state.CurrentMaxSpeed)
	}
	if state.Velocity != (mgl64.Vec3{}) {
		t.Fatalf("expected an idle character to stay still, got %v", state.Velocity)
	}
}

func TestSimulateSharpTurnDecay(t *testing.T) {
	sim := newFloorSim()
	state := groundedState(sim, mgl64.Vec3{0, 0, 300})
	state.CurrentMaxSpeed = 1400

	// Asking to move backwards while running forwards is a sharp turn.
	sim.Simulate(state, InputState{MoveVector: mgl64.Vec3{-1, 0, 0}})
	if state.CurrentMaxSpeed >= 1400 {
		t.Fatalf("expected sharp turn to decay max speed, got %v", state.CurrentMaxSpeed)
	}
}

func TestSimulateJump(t *testing.T) {
	sim := newFloorSim()
	state := groundedState(sim, mgl64.Vec3{})

	res := sim.Simulate(state, InputState{JumpPressed: true, JumpDown: true})
	if !res.Events.Has(EventJumped) {
		t.Fatalf("expected jump event, got %v", res.Events)
	}
	if res.Grounded || state.Velocity.Y() != sim.Tuning.Locomotion.JumpSpeed {
		t.Fatalf("expected airborne character with jump speed, got grounded=%v vel=%v", res.Grounded, state.Velocity)
	}
	if state.Position.Y() <= 0 {
		t.Fatalf("expected the jump to leave the ground this tick, got %v", state.Position)
	}

	landed := false
	for i := 0; i < 120 && !landed; i++ {
		res = sim.Simulate(state, InputState{JumpDown: true})
		if res.Events.Has(EventJumped) {
			t.Fatalf("tick %d: holding jump must not jump again", i)
		}
		landed = res.Events.Has(EventLanded)
	}
	if !landed {
		t.Fatalf("expected character to land within 2 seconds, at %v", state.Position)
	}
}

func TestSimulateLandingClearsState(t *testing.T) {
	for _, mode := range []Mode{Airborne{}, WallRunning{Side: WallLeft}, Climbing{}} {
		sim := newFloorSim()
		state := NewMovementState(mgl64.Vec3{0, 0.5, 0}, sim.Tuning)
		state.Mode = mode
		state.Velocity = mgl64.Vec3{0, -50, 200}
		state.HasParkouredSinceJump = true
		state.HasWallRunSinceJump = true
		state.LastWallRunSide = WallLeft
		state.ClimbCharges = 2

		res := sim.Simulate(state, InputState{})
		if !res.Events.Has(EventLanded) {
			t.Fatalf("%T: expected landing, got %v", mode, res.Events)
		}
		if state.Velocity.Y() != 0 {
			t.Fatalf("%T: expected vertical velocity to be zeroed, got %v", mode, state.Velocity)
		}
		if !state.Grounded() || state.WallRun() != WallNone || state.Climbing() {
			t.Fatalf("%T: expected grounded mode, got %v", mode, state.Kind())
		}
		if state.HasParkouredSinceJump || state.HasWallRunSinceJump || state.LastWallRunSide != WallNone {
			t.Fatalf("%T: expected debounce flags to be cleared", mode)
		}
		if state.ClimbCharges != 0 {
			t.Fatalf("%T: expected climb charges to refill, got %d", mode, state.ClimbCharges)
		}
		if state.CurrentMaxSpeed != sim.Tuning.Locomotion.MaxSpeed {
			t.Fatalf("%T: expected landing bonus to reach max speed, got %v", mode, state.CurrentMaxSpeed)
		}
	}
}

func TestSimulateDashTiming(t *testing.T) {
	sim := newFloorSim()
	state := groundedState(sim, mgl64.Vec3{})

	res := sim.Simulate(state, InputState{Right: true, JumpPressed: true, JumpDown: true})
	if !res.Events.Has(EventDashed) || res.Events.Has(EventJumped) {
		t.Fatalf("expected a dash instead of a jump, got %v", res.Events)
	}
	if state.Dashing != DashRight || state.Velocity.X() >= 0 {
		t.Fatalf("expected dash to the right (-X at yaw 0), got %v vel=%v", state.Dashing, state.Velocity)
	}
	if state.CurrentMaxSpeed <= sim.Tuning.Locomotion.StartingSpeed {
		t.Fatalf("expected dash speed boost, got %v", state.CurrentMaxSpeed)
	}

	ended := 0
	for i := 0; i < 120; i++ {
		res = sim.Simulate(state, InputState{Right: true})
		if res.Events.Has(EventDashEnded) {
			ended++
		}
		if want := state.TimeSinceDash <= sim.Tuning.Dash.Duration; state.IsDashing() != want {
			t.Fatalf("tick %d: dashing=%v with %v seconds since dash", i, state.IsDashing(), state.TimeSinceDash)
		}
	}
	if ended != 1 {
		t.Fatalf("expected exactly one dash end, got %d", ended)
	}
}

func TestSimulateDashCooldown(t *testing.T) {
	sim := newFloorSim()
	state := groundedState(sim, mgl64.Vec3{})
	dash := InputState{Left: true, JumpPressed: true, JumpDown: true}

	sim.Simulate(state, dash)
	for i := 0; i < 40; i++ {
		sim.Simulate(state, InputState{})
	}
	if res := sim.Simulate(state, dash); res.Events.Has(EventDashed) || res.Events.Has(EventJumped) {
		t.Fatalf("expected dash on cooldown to do nothing, got %v", res.Events)
	}
	for i := 0; i < 30; i++ {
		sim.Simulate(state, InputState{})
	}
	if res := sim.Simulate(state, dash); !res.Events.Has(EventDashed) || state.Dashing != DashLeft {
		t.Fatalf("expected dash after cooldown, got %v", res.Events)
	}
}

func TestSimulateDuckAndSlide(t *testing.T) {
	sim := newFloorSim()
	audio := &recordingAudio{}
	sim.Audio = audio
	state := groundedState(sim, mgl64.Vec3{0, 0, 400})
	duck := InputState{DuckDown: true, DuckPressed: true}

	res := sim.Simulate(state, duck)
	if !res.Events.Has(EventSlideStarted) || !state.Sliding || !state.Ducking {
		t.Fatalf("expected slide to start, got %v sliding=%v", res.Events, state.Sliding)
	}
	if state.CurrentMaxSpeed > sim.Tuning.Slide.DuckMaxSpeed {
		t.Fatalf("expected duck cap, got %v", state.CurrentMaxSpeed)
	}

	duck.DuckPressed = false
	stopped := false
	for i := 0; i < 600 && !stopped; i++ {
		res = sim.Simulate(state, duck)
		stopped = res.Events.Has(EventSlideStopped)
	}
	if !stopped {
		t.Fatalf("expected slide to stop once slow, still at %v", state.HorizontalSpeed())
	}
	if res.SlideTailVolume != 1 {
		t.Fatalf("expected full slide tail volume on stop, got %v", res.SlideTailVolume)
	}

	last := res.SlideTailVolume
	for i := 0; i < 60; i++ {
		res = sim.Simulate(state, duck)
		if res.SlideTailVolume > last {
			t.Fatalf("tick %d: slide tail grew from %v to %v", i, last, res.SlideTailVolume)
		}
		last = res.SlideTailVolume
	}
	if last != 0 {
		t.Fatalf("expected slide tail to finish, got %v", last)
	}
	if len(audio.tails) == 0 || audio.tails[0] != 1 {
		t.Fatalf("expected slide tail to reach the audio sink, got %v", audio.tails)
	}

	sim.Simulate(state, InputState{DuckReleased: true})
	if state.Ducking || state.CurrentMaxSpeed != sim.Tuning.Locomotion.StartingSpeed {
		t.Fatalf("expected releasing duck to restore starting speed, got ducking=%v speed=%v", state.Ducking, state.CurrentMaxSpeed)
	}
}

func TestSimulateNoclip(t *testing.T) {
	sim := newFloorSim()
	state := NewMovementState(mgl64.Vec3{0, 100, 0}, sim.Tuning)
	state.Noclip = true
	state.Velocity = mgl64.Vec3{5, 5, 5}

	res := sim.Simulate(state, InputState{MoveVector: mgl64.Vec3{1, 0, 0}, View: Angles{Pitch: -90}})
	if res.Outcome != SimulationOutcomeNoclip {
		t.Fatalf("expected noclip outcome, got %v", res.Outcome)
	}
	want := mgl64.Vec3{0, 100 + sim.Tuning.Debug.NoclipSpeed/DefaultTickRate, 0}
	if !state.Position.ApproxEqualThreshold(want, 1e-6) || state.Velocity != (mgl64.Vec3{}) {
		t.Fatalf("expected to fly straight up to %v, got %v vel=%v", want, state.Position, state.Velocity)
	}
}

func TestSimulateSnapTurn(t *testing.T) {
	sim := newFloorSim()
	state := groundedState(sim, mgl64.Vec3{})

	res := sim.Simulate(state, InputState{SnapTurn: true, View: Angles{Yaw: 10}})
	if !res.Events.Has(EventSnapTurned) {
		t.Fatalf("expected snap turn event, got %v", res.Events)
	}
	if math.Abs(state.Facing.Yaw-(-170)) > 1e-9 {
		t.Fatalf("expected facing yaw -170, got %v", state.Facing.Yaw)
	}
	sim.Simulate(state, InputState{View: Angles{Yaw: 20}})
	if math.Abs(state.Facing.Yaw-(-160)) > 1e-9 {
		t.Fatalf("expected snap offset to persist, got %v", state.Facing.Yaw)
	}
}

func TestSimulateFootsteps(t *testing.T) {
	sim := newFloorSim()
	state := groundedState(sim, mgl64.Vec3{})

	for i := 0; i < 60; i++ {
		if res := sim.Simulate(state, InputState{}); res.Events.Has(EventFootstep) {
			t.Fatalf("tick %d: standing still must not make footsteps", i)
		}
	}

	steps := 0
	input := InputState{MoveVector: mgl64.Vec3{1, 0, 0}, Forward: true}
	for i := 0; i < 300; i++ {
		if res := sim.Simulate(state, input); res.Events.Has(EventFootstep) {
			steps++
		}
	}
	if steps < 5 {
		t.Fatalf("expected regular footsteps while running, got %d", steps)
	}
}

func TestSimulateUnlimitedSprint(t *testing.T) {
	sim := newFloorSim()
	state := groundedState(sim, mgl64.Vec3{})
	state.UnlimitedSprint = true

	sim.Simulate(state, InputState{})
	if state.CurrentMaxSpeed != sim.Tuning.Locomotion.MaxSpeed {
		t.Fatalf("expected unlimited sprint to pin max speed, got %v", state.CurrentMaxSpeed)
	}
}

func TestSimulateReplaySkipsSinks(t *testing.T) {
	sim := newFloorSim()
	audio := &recordingAudio{}
	sim.Audio = audio

	state := groundedState(sim, mgl64.Vec3{})
	sim.SimulateReplay(state, InputState{JumpPressed: true, JumpDown: true})
	if len(audio.events) != 0 {
		t.Fatalf("expected replay to stay silent, got %v", audio.events)
	}

	state = groundedState(sim, mgl64.Vec3{})
	sim.Simulate(state, InputState{JumpPressed: true, JumpDown: true})
	if len(audio.events) != 1 || audio.events[0] != EventJumped {
		t.Fatalf("expected the jump to reach the audio sink, got %v", audio.events)
	}
}

func TestSimulateWithoutWorld(t *testing.T) {
	sim := &Simulator{Tuning: DefaultTuning()}
	state := NewMovementState(mgl64.Vec3{}, sim.Tuning)

	res := sim.Simulate(state, InputState{JumpDown: true, MoveVector: mgl64.Vec3{1, 0, 0}})
	if res.Grounded || state.Velocity.Y() >= 0 {
		t.Fatalf("expected free fall without a world, got grounded=%v vel=%v", res.Grounded, state.Velocity)
	}
}

func TestSimulateDebugf(t *testing.T) {
	sim := newFloorSim()
	var lines int
	sim.Options.Debugf = func(string, ...any) { lines++ }

	sim.Simulate(NewMovementState(mgl64.Vec3{}, sim.Tuning), InputState{})
	if lines == 0 {
		t.Fatalf("expected the landing to be traced")
	}
}
