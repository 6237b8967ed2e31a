package movesim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/omath"
)

// Unstick moves a character overlapping solid geometry, for example after a teleport, to the first
// free position out of a fixed list of candidates: upward steps first, then the four horizontal
// directions. It returns true if the character was moved. It is never run by Simulate.
func (s *Simulator) Unstick(state *MovementState) bool {
	if s.World == nil || state == nil || !s.overlapping(state.Position) {
		return false
	}
	for _, offset := range unstickCandidates(s.Tuning.Unstick) {
		pos := state.Position.Add(offset)
		if s.overlapping(pos) {
			continue
		}
		s.debugf("unstick: moved from %v to %v", state.Position, pos)
		state.Teleport(pos)
		return true
	}
	s.debugf("unstick: no free position around %v", state.Position)
	return false
}

func (s *Simulator) overlapping(pos mgl64.Vec3) bool {
	return s.World.CastBox(Hull(), pos, pos).Hit
}

func unstickCandidates(t UnstickTuning) []mgl64.Vec3 {
	if t.Step <= 0 {
		return nil
	}
	var candidates []mgl64.Vec3
	for h := t.Step; h <= t.MaxHeight; h += t.Step {
		candidates = append(candidates, omath.Up().Mul(h))
	}
	return append(candidates,
		mgl64.Vec3{t.Sideways, 0, 0},
		mgl64.Vec3{-t.Sideways, 0, 0},
		mgl64.Vec3{0, 0, t.Sideways},
		mgl64.Vec3{0, 0, -t.Sideways},
	)
}
