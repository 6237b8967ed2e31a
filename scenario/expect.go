package scenario

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/movesim"
)

// Expectation is a condition on the state after a tick. With Tick zero the condition must hold
// after at least one tick of the run, otherwise after the given tick exactly. Empty fields are not
// checked.
type Expectation struct {
	Tick     int         `yaml:"tick,omitempty"`
	Mode     string      `yaml:"mode,omitempty"`
	Vault    string      `yaml:"vault,omitempty"`
	WallRun  string      `yaml:"wall_run,omitempty"`
	Grounded *bool       `yaml:"grounded,omitempty"`
	Events   []string    `yaml:"events,omitempty"`
	Min      *mgl64.Vec3 `yaml:"min,omitempty"`
	Max      *mgl64.Vec3 `yaml:"max,omitempty"`

	mode    movesim.ModeKind
	vault   movesim.VaultKind
	wallRun movesim.WallSide
	events  movesim.EventSet
}

func (e *Expectation) compile() error {
	if e.Tick < 0 {
		return fmt.Errorf("negative tick %d", e.Tick)
	}
	var ok bool
	if e.Mode != "" {
		if e.mode, ok = parseMode(e.Mode); !ok {
			return fmt.Errorf("unknown mode %q", e.Mode)
		}
	}
	if e.Vault != "" {
		if e.vault, ok = parseVault(e.Vault); !ok {
			return fmt.Errorf("unknown vault kind %q", e.Vault)
		}
	}
	if e.WallRun != "" {
		if e.wallRun, ok = parseWallSide(e.WallRun); !ok {
			return fmt.Errorf("unknown wall side %q", e.WallRun)
		}
	}
	e.events = 0
	for _, name := range e.Events {
		ev, ok := movesim.ParseEvent(name)
		if !ok {
			return fmt.Errorf("unknown event %q", name)
		}
		e.events.Add(ev)
	}
	return nil
}

// check reports whether the expectation holds for the state after a tick, and if not, why.
func (e *Expectation) check(state *movesim.MovementState, res movesim.SimulationResult) (string, bool) {
	if e.Mode != "" && state.Kind() != e.mode {
		return fmt.Sprintf("mode is %v, want %v", state.Kind(), e.mode), false
	}
	if e.Vault != "" && state.Vault() != e.vault {
		return fmt.Sprintf("vault is %v, want %v", state.Vault(), e.vault), false
	}
	if e.WallRun != "" && state.WallRun() != e.wallRun {
		return fmt.Sprintf("wall run is %v, want %v", state.WallRun(), e.wallRun), false
	}
	if e.Grounded != nil && res.Grounded != *e.Grounded {
		return fmt.Sprintf("grounded is %v, want %v", res.Grounded, *e.Grounded), false
	}
	if missing := e.events &^ res.Events; missing != 0 {
		return fmt.Sprintf("events %v missing from %v", missing, res.Events), false
	}
	for i := range 3 {
		if e.Min != nil && res.Position[i] < e.Min[i] {
			return fmt.Sprintf("position %v below %v", res.Position, *e.Min), false
		}
		if e.Max != nil && res.Position[i] > e.Max[i] {
			return fmt.Sprintf("position %v above %v", res.Position, *e.Max), false
		}
	}
	return "", true
}

func (e *Expectation) String() string {
	var parts []string
	if e.Mode != "" {
		parts = append(parts, "mode "+e.Mode)
	}
	if e.Vault != "" {
		parts = append(parts, "vault "+e.Vault)
	}
	if e.WallRun != "" {
		parts = append(parts, "wall run "+e.WallRun)
	}
	if e.Grounded != nil {
		parts = append(parts, fmt.Sprintf("grounded %v", *e.Grounded))
	}
	if len(e.Events) > 0 {
		parts = append(parts, "events "+strings.Join(e.Events, ","))
	}
	if e.Min != nil {
		parts = append(parts, fmt.Sprintf("min %v", *e.Min))
	}
	if e.Max != nil {
		parts = append(parts, fmt.Sprintf("max %v", *e.Max))
	}
	if len(parts) == 0 {
		return "anything"
	}
	return strings.Join(parts, ", ")
}

// Failure is returned by Run for the first expectation that did not hold.
type Failure struct {
	Scenario string
	// Index is the position of the expectation in the scenario.
	Index int
	// Tick is the tick the expectation failed on, zero if it never held.
	Tick   int
	Reason string
}

func (f *Failure) Error() string {
	if f.Tick == 0 {
		return fmt.Sprintf("scenario %s: expectation %d: %s", f.Scenario, f.Index, f.Reason)
	}
	return fmt.Sprintf("scenario %s: expectation %d at tick %d: %s", f.Scenario, f.Index, f.Tick, f.Reason)
}

func parseMode(name string) (movesim.ModeKind, bool) {
	for k := movesim.ModeAirborne; k <= movesim.ModeClimbing; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

func parseVault(name string) (movesim.VaultKind, bool) {
	for k := movesim.VaultNone; k <= movesim.VaultOntoHigh; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

func parseWallSide(name string) (movesim.WallSide, bool) {
	for s := movesim.WallNone; s <= movesim.WallRight; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}
