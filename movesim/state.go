package movesim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/omath"
)

// MovementState holds the kinematic and controller state of a single character. It is owned by
// the character and mutated only by the Simulator.
type MovementState struct {
	Position, LastPosition mgl64.Vec3
	Velocity, LastVelocity mgl64.Vec3
	Facing                 Angles

	// Ground is the object stood on, zero while airborne.
	Ground ObjectID
	Mode   Mode

	CurrentMaxSpeed float64

	Dashing         DashSide
	Ducking         bool
	Sliding         bool
	Noclip          bool
	UnlimitedSprint bool

	TimeSinceDash            float64
	TimeSinceClimbActivity   float64
	TimeSinceWallRunStart    float64
	TimeSinceSlideStopped    float64
	TimeSinceFootstep        float64
	TimeSinceFootstepRelease float64

	// ClimbCharges counts the climb pulls used since the last landing. Zero means fully charged.
	ClimbCharges int

	LastWallRunSide       WallSide
	HasParkouredSinceJump bool
	HasWallRunSinceJump   bool

	// ForwardDirection is the horizontal direction of travel, kept while standing still.
	ForwardDirection mgl64.Vec3
	SnapYaw          float64

	Tick   uint64
	Events EventSet
}

// NewMovementState returns the state of a character spawned standing at pos.
func NewMovementState(pos mgl64.Vec3, tuning Tuning) *MovementState {
	return &MovementState{
		Position:        pos,
		LastPosition:    pos,
		Mode:            Airborne{},
		CurrentMaxSpeed: tuning.Locomotion.StartingSpeed,
		// Abilities gated on elapsed time start available.
		TimeSinceDash:          tuning.Dash.Cooldown + 1,
		TimeSinceClimbActivity: tuning.Climb.PullInterval + 1,
		TimeSinceSlideStopped:  tuning.Slide.TailDuration + 1,
		ForwardDirection:       omath.ForwardVector(0),
	}
}

// Teleport places the character at pos without interpolation and stops it.
func (s *MovementState) Teleport(pos mgl64.Vec3) {
	s.Position, s.LastPosition = pos, pos
	s.Velocity, s.LastVelocity = mgl64.Vec3{}, mgl64.Vec3{}
}

// Kind returns the kind of the current mode.
func (s *MovementState) Kind() ModeKind {
	return KindOf(s.Mode)
}

// Grounded returns true if the ground probe found support this tick.
func (s *MovementState) Grounded() bool {
	return s.Kind() == ModeGrounded
}

// WallRun returns the side of the wall being run on, if any.
func (s *MovementState) WallRun() WallSide {
	if w, ok := s.Mode.(WallRunning); ok {
		return w.Side
	}
	return WallNone
}

// Vault returns the kind of the active vault, if any.
func (s *MovementState) Vault() VaultKind {
	if v, ok := s.Mode.(Vaulting); ok {
		return v.Kind
	}
	return VaultNone
}

// Climbing returns true while mantling a wall.
func (s *MovementState) Climbing() bool {
	return s.Kind() == ModeClimbing
}

// IsDashing returns true while a dash is active.
func (s *MovementState) IsDashing() bool {
	return s.Dashing != DashNone
}

// HorizontalSpeed returns the speed of the character ignoring vertical movement.
func (s *MovementState) HorizontalSpeed() float64 {
	return omath.HorizontalLen(s.Velocity)
}
