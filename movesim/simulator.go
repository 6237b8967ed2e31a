package movesim

// SimulationOptions define simulator behavior independent of movement tuning.
type SimulationOptions struct {
	// TickDelta is the fixed duration of one tick in seconds. Zero uses 1/DefaultTickRate.
	TickDelta float64

	// CheckInvariants asserts the state invariants after every tick and panics on violation.
	CheckInvariants bool

	// Debugf receives ability transition traces for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// Simulator orchestrates movement simulation using the provided adapters. Audio and Camera are
// optional.
type Simulator struct {
	World   WorldQuery
	Audio   AudioSink
	Camera  CameraSink
	Tuning  Tuning
	Options SimulationOptions
}

// NewSimulator returns a simulator using the default tuning.
func NewSimulator(w WorldQuery, opts SimulationOptions) *Simulator {
	return &Simulator{World: w, Tuning: DefaultTuning(), Options: opts}
}

func (s *Simulator) tickDelta() float64 {
	if s.Options.TickDelta > 0 {
		return s.Options.TickDelta
	}
	return 1.0 / DefaultTickRate
}

func (s *Simulator) debugf(format string, args ...any) {
	if s.Options.Debugf != nil {
		s.Options.Debugf(format, args...)
	}
}
