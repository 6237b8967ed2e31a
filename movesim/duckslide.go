package movesim

import (
	"math"

	"github.com/runnervision/freerun/omath"
)

// updateDuckSlide applies the duck speed cap and starts or stops sliding.
func (c *tickContext) updateDuckSlide() {
	s, t := c.state, &c.tuning.Slide

	ducking := c.input.DuckDown || c.input.DuckPressed
	if s.Ducking && !ducking {
		s.CurrentMaxSpeed = c.tuning.Locomotion.StartingSpeed
	}
	s.Ducking = ducking
	if s.Ducking {
		s.CurrentMaxSpeed = math.Min(s.CurrentMaxSpeed, t.DuckMaxSpeed)
	}

	shouldSlide := c.grounded && s.Ducking && s.HorizontalSpeed() >= t.MinSpeed
	switch {
	case s.Sliding && !shouldSlide:
		s.Sliding = false
		s.TimeSinceSlideStopped = 0
		s.Events.Add(EventSlideStopped)
	case !s.Sliding && shouldSlide:
		s.Velocity = s.Velocity.Add(omath.ForwardVector(s.Facing.Yaw).Mul(t.Impulse))
		s.Sliding = true
		s.Events.Add(EventSlideStarted)
	}

	if !s.Sliding && s.TimeSinceSlideStopped < t.TailDuration {
		c.slideTail = 1 - s.TimeSinceSlideStopped/t.TailDuration
	}
}
