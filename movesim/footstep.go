package movesim

// updateFootsteps raises footstep cues at a cadence that follows the speed of the character.
func (c *tickContext) updateFootsteps() {
	s, t := c.state, &c.tuning.Footsteps
	speed := s.Velocity.Len()
	if speed < speedEpsilon {
		return
	}

	var next float64
	switch {
	case s.Climbing():
		next = t.ClimbInterval
	case s.WallRun() != WallNone:
		next = t.WallRunStride / speed
	case c.grounded:
		next = t.Stride / speed
	default:
		return
	}

	if s.TimeSinceFootstep > next {
		s.Events.Add(EventFootstep)
		s.TimeSinceFootstep = 0
	}
	if s.TimeSinceFootstepRelease > next*t.ReleaseRatio && speed > t.ReleaseSpeed {
		s.Events.Add(EventFootstepRelease)
		s.TimeSinceFootstepRelease = 0
	}
}
