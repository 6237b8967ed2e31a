package movesim

import "github.com/go-gl/mathgl/mgl64"

// ModeKind tags the variant held by a Mode.
type ModeKind uint8

const (
	ModeAirborne ModeKind = iota
	ModeGrounded
	ModeWallRunning
	ModeVaulting
	ModeClimbing
)

func (k ModeKind) String() string {
	switch k {
	case ModeGrounded:
		return "grounded"
	case ModeWallRunning:
		return "wallrunning"
	case ModeVaulting:
		return "vaulting"
	case ModeClimbing:
		return "climbing"
	default:
		return "airborne"
	}
}

// Mode is the mutually exclusive locomotion mode driving a tick. Exactly one mode is held by a
// MovementState at a time, so vaulting, wall-running and climbing can never overlap. A nil Mode is
// treated as Airborne.
type Mode interface {
	Kind() ModeKind
	sealed()
}

// WallSide is the side of the character a wall was found on.
type WallSide uint8

const (
	WallNone WallSide = iota
	WallLeft
	WallRight
)

func (s WallSide) String() string {
	switch s {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	default:
		return "none"
	}
}

// VaultKind classifies the obstacle being vaulted.
type VaultKind uint8

const (
	VaultNone VaultKind = iota
	VaultOnto
	VaultOver
	VaultOntoHigh
)

func (k VaultKind) String() string {
	switch k {
	case VaultOnto:
		return "onto"
	case VaultOver:
		return "over"
	case VaultOntoHigh:
		return "onto_high"
	default:
		return "none"
	}
}

// DashSide is the direction of an active dash.
type DashSide uint8

const (
	DashNone DashSide = iota
	DashLeft
	DashRight
)

func (s DashSide) String() string {
	switch s {
	case DashLeft:
		return "left"
	case DashRight:
		return "right"
	default:
		return "none"
	}
}

// Grounded is held while the ground probe finds qualifying support.
type Grounded struct{}

// Airborne is held while nothing supports the character.
type Airborne struct{}

// WallRunning is held while the character runs along a wall on Side.
type WallRunning struct {
	Side WallSide
}

// Vaulting carries the trajectory of an active vault. Progress runs from 0 to 1.
type Vaulting struct {
	Kind     VaultKind
	Start    mgl64.Vec3
	Target   mgl64.Vec3
	Progress float64
	Speed    float64

	StartCurve float64
	EndCurve   float64
}

// Climbing is held while the character mantles a wall.
type Climbing struct {
	// Target is the horizontal point eased towards while climbing.
	Target     mgl64.Vec3
	WallNormal mgl64.Vec3
	EntrySpeed float64
}

func (Grounded) Kind() ModeKind    { return ModeGrounded }
func (Airborne) Kind() ModeKind    { return ModeAirborne }
func (WallRunning) Kind() ModeKind { return ModeWallRunning }
func (Vaulting) Kind() ModeKind    { return ModeVaulting }
func (Climbing) Kind() ModeKind    { return ModeClimbing }

func (Grounded) sealed()    {}
func (Airborne) sealed()    {}
func (WallRunning) sealed() {}
func (Vaulting) sealed()    {}
func (Climbing) sealed()    {}

// KindOf returns the kind of m, treating nil as Airborne.
func KindOf(m Mode) ModeKind {
	if m == nil {
		return ModeAirborne
	}
	return m.Kind()
}
