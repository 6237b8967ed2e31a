package movesim

import "github.com/go-gl/mathgl/mgl64"

// SimulationOutcome describes which path the simulator took for the current tick.
type SimulationOutcome uint8

const (
	SimulationOutcomeNormal SimulationOutcome = iota
	SimulationOutcomeVault
	SimulationOutcomeNoclip
)

func (o SimulationOutcome) String() string {
	switch o {
	case SimulationOutcomeVault:
		return "vault"
	case SimulationOutcomeNoclip:
		return "noclip"
	default:
		return "normal"
	}
}

// SimulationResult captures the outcome of a single simulation tick.
type SimulationResult struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	Mode     Mode
	Grounded bool
	Events   EventSet

	// SlideTailVolume is the volume of the fading slide loop, zero once it has finished.
	SlideTailVolume float64

	Outcome SimulationOutcome
}
