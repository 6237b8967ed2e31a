package scenario

import (
	"fmt"
	"os"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/movesim"
	"github.com/runnervision/freerun/simerror"
	"github.com/runnervision/freerun/world"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted run of a single character through a static world.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Boxes       []Box         `yaml:"boxes"`
	Spawn       Spawn         `yaml:"spawn"`
	Segments    []Segment     `yaml:"inputs"`
	Expect      []Expectation `yaml:"expect,omitempty"`
}

// Box is a named solid box of the scenario world.
type Box struct {
	Name string     `yaml:"name"`
	Min  mgl64.Vec3 `yaml:"min"`
	Max  mgl64.Vec3 `yaml:"max"`
}

// Spawn describes the state of the character before the first tick.
type Spawn struct {
	Position mgl64.Vec3 `yaml:"position"`
	Velocity mgl64.Vec3 `yaml:"velocity"`

	// Grounded spawns the character standing instead of falling onto the ground.
	Grounded bool `yaml:"grounded"`
	// JumpHeld treats jump as held before the first tick, so the first input does not press it.
	JumpHeld        bool `yaml:"jump_held"`
	Noclip          bool `yaml:"noclip"`
	UnlimitedSprint bool `yaml:"unlimited_sprint"`
}

// Segment holds the same input for a number of ticks. Buttons are levels, the pressed and released
// edges are derived from the previous tick.
type Segment struct {
	Ticks int `yaml:"ticks"`
	// Move is the move intent. When omitted it is derived from the direction buttons.
	Move    mgl64.Vec3 `yaml:"move"`
	Yaw     float64    `yaml:"yaw"`
	Pitch   float64    `yaml:"pitch"`
	Forward bool       `yaml:"forward"`
	Left    bool       `yaml:"left"`
	Right   bool       `yaml:"right"`
	Jump    bool       `yaml:"jump"`
	Duck    bool       `yaml:"duck"`
	// Snap snap-turns on the first tick of the segment.
	Snap bool `yaml:"snap"`
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario from YAML and validates it.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, simerror.New("decode scenario: %v", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return simerror.New("scenario: missing name")
	}
	names := make(map[string]struct{}, len(s.Boxes))
	for _, b := range s.Boxes {
		if _, ok := names[b.Name]; ok || b.Name == "" {
			return simerror.New("scenario %s: box names must be unique and non-empty, got %q", s.Name, b.Name)
		}
		names[b.Name] = struct{}{}
		for i := range 3 {
			if b.Min[i] >= b.Max[i] {
				return simerror.New("scenario %s: box %s has no volume", s.Name, b.Name)
			}
		}
	}
	if len(s.Segments) == 0 {
		return simerror.New("scenario %s: no inputs", s.Name)
	}
	for i, seg := range s.Segments {
		if seg.Ticks <= 0 {
			return simerror.New("scenario %s: input %d must last at least one tick", s.Name, i)
		}
	}
	for i := range s.Expect {
		if err := s.Expect[i].compile(); err != nil {
			return simerror.New("scenario %s: expectation %d: %v", s.Name, i, err)
		}
		if s.Expect[i].Tick > s.Duration() {
			return simerror.New("scenario %s: expectation %d checks tick %d after the end", s.Name, i, s.Expect[i].Tick)
		}
	}
	return nil
}

// Duration returns the amount of ticks the scenario runs for.
func (s *Scenario) Duration() int {
	n := 0
	for _, seg := range s.Segments {
		n += seg.Ticks
	}
	return n
}

// World builds the collision world of the scenario.
func (s *Scenario) World() *world.World {
	w := world.New()
	for _, b := range s.Boxes {
		w.Add(b.Name, cube.Box(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2]))
	}
	return w
}

// SpawnState returns the state of the character before the first tick.
func (s *Scenario) SpawnState(tuning movesim.Tuning) *movesim.MovementState {
	state := movesim.NewMovementState(s.Spawn.Position, tuning)
	state.Velocity = s.Spawn.Velocity
	state.LastVelocity = s.Spawn.Velocity
	state.Noclip = s.Spawn.Noclip
	state.UnlimitedSprint = s.Spawn.UnlimitedSprint
	if s.Spawn.Grounded {
		state.Mode = movesim.Grounded{}
	}
	return state
}

// Inputs expands the input segments into one input per tick.
func (s *Scenario) Inputs() []movesim.InputState {
	inputs := make([]movesim.InputState, 0, s.Duration())
	jump, duck := s.Spawn.JumpHeld, false
	for _, seg := range s.Segments {
		move := seg.Move
		if move == (mgl64.Vec3{}) {
			move = directionMove(seg)
		}
		for i := 0; i < seg.Ticks; i++ {
			inputs = append(inputs, movesim.InputState{
				MoveVector:   move,
				View:         movesim.Angles{Pitch: seg.Pitch, Yaw: seg.Yaw},
				Forward:      seg.Forward,
				Left:         seg.Left,
				Right:        seg.Right,
				JumpDown:     seg.Jump,
				JumpPressed:  seg.Jump && !jump,
				JumpReleased: !seg.Jump && jump,
				DuckDown:     seg.Duck,
				DuckPressed:  seg.Duck && !duck,
				DuckReleased: !seg.Duck && duck,
				SnapTurn:     seg.Snap && i == 0,
			})
			jump, duck = seg.Jump, seg.Duck
		}
	}
	return inputs
}

func directionMove(seg Segment) mgl64.Vec3 {
	var move mgl64.Vec3
	if seg.Forward {
		move[0] = 1
	}
	if seg.Left {
		move[1]++
	}
	if seg.Right {
		move[1]--
	}
	return move
}

// Run simulates every input of the scenario on state and checks the expectations. It returns the
// result of every tick and the first failed expectation, if any.
func (s *Scenario) Run(sim *movesim.Simulator, state *movesim.MovementState) ([]movesim.SimulationResult, error) {
	inputs := s.Inputs()
	trace := make([]movesim.SimulationResult, 0, len(inputs))
	met := make([]bool, len(s.Expect))

	var failure *Failure
	for i, in := range inputs {
		tick := i + 1
		res := sim.Simulate(state, in)
		trace = append(trace, res)

		for j, e := range s.Expect {
			if met[j] || (e.Tick != 0 && e.Tick != tick) {
				continue
			}
			reason, ok := e.check(state, res)
			if ok {
				met[j] = true
				continue
			}
			if e.Tick != 0 && failure == nil {
				failure = &Failure{Scenario: s.Name, Index: j, Tick: tick, Reason: reason}
			}
		}
	}
	if failure != nil {
		return trace, failure
	}
	for j, e := range s.Expect {
		if !met[j] && e.Tick == 0 {
			return trace, &Failure{Scenario: s.Name, Index: j, Reason: "never " + e.String()}
		}
	}
	return trace, nil
}
