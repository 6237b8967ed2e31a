package prediction

import (
	"io"

	"github.com/runnervision/freerun/movesim"
	"github.com/runnervision/freerun/simerror"
	"github.com/sirupsen/logrus"
)

// DefaultHistorySize is the amount of frames buffered by default, two seconds at the default tick
// rate.
const DefaultHistorySize = 2 * movesim.DefaultTickRate

// Correction is the outcome of reconciling the prediction with an authoritative state.
type Correction struct {
	// Tick is the tick of the authoritative state.
	Tick uint64
	// Corrected is true if the prediction diverged and was replayed.
	Corrected bool
	// Replayed is the amount of buffered inputs simulated again from the authoritative state.
	Replayed int
	// PositionError is the distance between the mispredicted and the corrected position.
	PositionError float64
	// State is the corrected state of the latest predicted tick.
	State movesim.MovementState
}

// Predictor runs a character ahead of the authority and corrects it when authoritative states
// arrive.
type Predictor struct {
	Sim     *movesim.Simulator
	History *History
	Logger  *logrus.Entry
}

// NewPredictor returns a predictor buffering up to historySize ticks.
func NewPredictor(sim *movesim.Simulator, historySize int, log *logrus.Entry) *Predictor {
	return &Predictor{Sim: sim, History: NewHistory(historySize), Logger: log}
}

// Predict simulates one tick of state and records it.
func (p *Predictor) Predict(state *movesim.MovementState, input movesim.InputState) movesim.SimulationResult {
	res := p.Sim.Simulate(state, input)
	p.History.Add(Frame{Tick: state.Tick, Input: input, State: *state})
	return res
}

// Reconcile compares the prediction of the authoritative tick with the authoritative state. A
// matching prediction only drops the confirmed frames. A mismatch replays every later buffered
// input from the authoritative state without touching the audio and camera sinks, and replaces
// the buffered frames with the replayed ones. The caller must continue from Correction.State.
func (p *Predictor) Reconcile(authoritative movesim.MovementState) (Correction, error) {
	frame, ok := p.History.Get(authoritative.Tick)
	if !ok {
		return Correction{}, simerror.New("reconcile: tick %d is not buffered", authoritative.Tick)
	}
	latest, _ := p.History.Latest()
	c := Correction{Tick: authoritative.Tick, State: latest.State}
	if movesim.Checksum(&frame.State) == movesim.Checksum(&authoritative) {
		p.History.DropThrough(authoritative.Tick)
		return c, nil
	}

	later := p.History.After(authoritative.Tick)
	p.History.Clear()

	state := authoritative
	for _, f := range later {
		p.Sim.SimulateReplay(&state, f.Input)
		p.History.Add(Frame{Tick: state.Tick, Input: f.Input, State: state})
	}

	c.Corrected, c.Replayed, c.State = true, len(later), state
	c.PositionError = state.Position.Sub(latest.State.Position).Len()
	p.log().WithFields(logrus.Fields{
		"tick":     authoritative.Tick,
		"replayed": c.Replayed,
		"error":    c.PositionError,
	}).Debug("prediction corrected")
	return c, nil
}

func (p *Predictor) log() *logrus.Entry {
	if p.Logger != nil {
		return p.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
