package movesim

import "github.com/go-gl/mathgl/mgl64"

// Angles is a view or facing rotation in degrees. Yaw 0 faces +Z and positive pitch looks down.
type Angles struct {
	Pitch float64
	Yaw   float64
}

// InputState represents a single tick of player intent.
type InputState struct {
	// MoveVector is character relative: X forward, Y left, Z up. It is normalised before use.
	MoveVector mgl64.Vec3
	View       Angles

	Forward bool
	Left    bool
	Right   bool

	JumpDown     bool
	JumpPressed  bool
	JumpReleased bool

	DuckDown     bool
	DuckPressed  bool
	DuckReleased bool

	SnapTurn bool
}
