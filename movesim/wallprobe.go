package movesim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/omath"
)

// ProbeWall casts the side ray used to find walls next to a character at pos moving with vel. The
// ray starts at a fixed height and points perpendicular to the horizontal velocity, leaning forward,
// or backward when behind is set to find walls already passed. A character without horizontal
// velocity finds no wall.
func ProbeWall(w WorldQuery, pos, vel mgl64.Vec3, t WallProbeTuning, side WallSide, behind bool) Hit {
	fwd := omath.SafeNormalize(omath.Horizontal(vel))
	if w == nil || side == WallNone || fwd == (mgl64.Vec3{}) {
		return Hit{}
	}
	left := mgl64.Vec3{fwd.Z(), 0, -fwd.X()}

	reach, lead := t.Reach, t.Lead
	if side == WallRight {
		reach = -reach
	}
	if behind {
		lead = -lead
	}

	from := pos.Add(omath.Up().Mul(t.Height))
	to := from.Add(left.Mul(reach)).Add(fwd.Mul(lead))
	return w.CastRay(from, to)
}

// DetectWall returns the first side, left before right, a wall is found on.
func DetectWall(w WorldQuery, pos, vel mgl64.Vec3, t WallProbeTuning, behind bool) (WallSide, Hit) {
	for _, side := range [...]WallSide{WallLeft, WallRight} {
		if hit := ProbeWall(w, pos, vel, t, side, behind); hit.Hit {
			return side, hit
		}
	}
	return WallNone, Hit{}
}

func (c *tickContext) probeWall(side WallSide) Hit {
	return ProbeWall(c.sim.World, c.state.Position, c.state.Velocity, c.tuning.WallProbe, side, false)
}
