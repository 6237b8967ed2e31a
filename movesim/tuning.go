package movesim

import (
	"github.com/runnervision/freerun/simerror"
)

// Tuning holds every tunable constant of the controller. Angles are in degrees, distances in
// world units and durations in seconds. Several of the parkour thresholds changed across
// revisions of the original game, so all of them are exposed here rather than hardcoded.
type Tuning struct {
	Locomotion LocomotionTuning `toml:"locomotion"`
	WallProbe  WallProbeTuning  `toml:"wall_probe"`
	WallRun    WallRunTuning    `toml:"wall_run"`
	Climb      ClimbTuning      `toml:"climb"`
	Vault      VaultTuning      `toml:"vault"`
	Dash       DashTuning       `toml:"dash"`
	Slide      SlideTuning      `toml:"slide"`
	Footsteps  FootstepTuning   `toml:"footsteps"`
	Debug      DebugTuning      `toml:"debug"`
	Unstick    UnstickTuning    `toml:"unstick"`
}

type LocomotionTuning struct {
	StepSize    float64 `toml:"step_size"`
	GroundAngle float64 `toml:"ground_angle"`
	JumpSpeed   float64 `toml:"jump_speed"`
	Gravity     float64 `toml:"gravity"`

	StartingSpeed float64 `toml:"starting_speed"`
	MaxSpeed      float64 `toml:"max_speed"`
	// SpeedGrowthRate and SpeedShrinkRate are per-second approach rates of the speed ramp.
	SpeedGrowthRate float64 `toml:"speed_growth_rate"`
	SpeedShrinkRate float64 `toml:"speed_shrink_rate"`
	SharpTurnAngle  float64 `toml:"sharp_turn_angle"`

	Friction          float64 `toml:"friction"`
	StopSpeed         float64 `toml:"stop_speed"`
	Acceleration      float64 `toml:"acceleration"`
	AccelerationScale float64 `toml:"acceleration_scale"`

	LandingSpeedBonus    float64 `toml:"landing_speed_bonus"`
	LandingBonusMinSpeed float64 `toml:"landing_bonus_min_speed"`
	StickToGround        bool    `toml:"stick_to_ground"`
}

// WallProbeTuning positions the velocity-relative side rays shared by wall-running,
// climbing and vaulting.
type WallProbeTuning struct {
	Height float64 `toml:"height"`
	Reach  float64 `toml:"reach"`
	Lead   float64 `toml:"lead"`
}

type WallRunTuning struct {
	MinSpeed     float64 `toml:"min_speed"`
	MinAngle     float64 `toml:"min_angle"`
	MaxAngle     float64 `toml:"max_angle"`
	GravityScale float64 `toml:"gravity_scale"`

	EntryDamping float64 `toml:"entry_damping"`
	EntryImpulse float64 `toml:"entry_impulse"`
	EntryLift    float64 `toml:"entry_lift"`

	JumpDamping         float64 `toml:"jump_damping"`
	JumpForward         float64 `toml:"jump_forward"`
	JumpUp              float64 `toml:"jump_up"`
	JumpMinForwardScale float64 `toml:"jump_min_forward_scale"`
}

type ClimbTuning struct {
	MaxCharges int `toml:"max_charges"`

	ProbeHeight  float64 `toml:"probe_height"`
	ProbeStart   float64 `toml:"probe_start"`
	ProbeEnd     float64 `toml:"probe_end"`
	MaxWallAngle float64 `toml:"max_wall_angle"`

	// The clearance box sits past the climbed surface and must be empty for a mantle.
	ClearanceRadius float64 `toml:"clearance_radius"`
	ClearanceDepth  float64 `toml:"clearance_depth"`
	ClearanceBottom float64 `toml:"clearance_bottom"`
	ClearanceTop    float64 `toml:"clearance_top"`

	PullInterval      float64 `toml:"pull_interval"`
	PullImpulse       float64 `toml:"pull_impulse"`
	BoostScale        float64 `toml:"boost_scale"`
	BoostMax          float64 `toml:"boost_max"`
	HorizontalDamping float64 `toml:"horizontal_damping"`
	WallGap           float64 `toml:"wall_gap"`
	EaseRate          float64 `toml:"ease_rate"`
}

type VaultTuning struct {
	BoxRadius      float64 `toml:"box_radius"`
	FrontBoxRadius float64 `toml:"front_box_radius"`
	FrontBoxHeight float64 `toml:"front_box_height"`

	MinProbeDistance float64 `toml:"min_probe_distance"`
	ProbeSpeedScale  float64 `toml:"probe_speed_scale"`

	BehindScale     float64 `toml:"behind_scale"`
	BehindOffset    float64 `toml:"behind_offset"`
	BehindBoxTop    float64 `toml:"behind_box_top"`
	FailsafeHeight  float64 `toml:"failsafe_height"`
	OverClearBottom float64 `toml:"over_clear_bottom"`
	OverClearTop    float64 `toml:"over_clear_top"`
	OverTraceTop    float64 `toml:"over_trace_top"`
	OverTraceBottom float64 `toml:"over_trace_bottom"`
	OverFallDrop    float64 `toml:"over_fall_drop"`
	OverFallSpeed   float64 `toml:"over_fall_speed"`

	OntoClearBottom float64 `toml:"onto_clear_bottom"`
	OntoClearTop    float64 `toml:"onto_clear_top"`
	HighClearBottom float64 `toml:"high_clear_bottom"`
	HighClearTop    float64 `toml:"high_clear_top"`
	HighForward     float64 `toml:"high_forward"`
	GroundTraceTop  float64 `toml:"ground_trace_top"`
	GroundTraceDrop float64 `toml:"ground_trace_drop"`
	TargetLift      float64 `toml:"target_lift"`

	OverSpeed     float64 `toml:"over_speed"`
	OntoMinSpeed  float64 `toml:"onto_min_speed"`
	OntoHighSpeed float64 `toml:"onto_high_speed"`
	ProgressScale float64 `toml:"progress_scale"`

	CurveHeight    float64 `toml:"curve_height"`
	HighStartCurve float64 `toml:"high_start_curve"`
	HighEndCurve   float64 `toml:"high_end_curve"`
	EaseRate       float64 `toml:"ease_rate"`
}

type DashTuning struct {
	Cooldown   float64 `toml:"cooldown"`
	Duration   float64 `toml:"duration"`
	Impulse    float64 `toml:"impulse"`
	SpeedBoost float64 `toml:"speed_boost"`
}

type SlideTuning struct {
	DuckMaxSpeed float64 `toml:"duck_max_speed"`
	MinSpeed     float64 `toml:"min_speed"`
	Impulse      float64 `toml:"impulse"`
	Friction     float64 `toml:"friction"`
	TailDuration float64 `toml:"tail_duration"`
}

type FootstepTuning struct {
	Stride        float64 `toml:"stride"`
	WallRunStride float64 `toml:"wall_run_stride"`
	ClimbInterval float64 `toml:"climb_interval"`
	ReleaseRatio  float64 `toml:"release_ratio"`
	ReleaseSpeed  float64 `toml:"release_speed"`
}

type DebugTuning struct {
	NoclipSpeed float64 `toml:"noclip_speed"`
}

// UnstickTuning bounds the on-demand penetration search of Simulator.Unstick.
type UnstickTuning struct {
	Step      float64 `toml:"step"`
	MaxHeight float64 `toml:"max_height"`
	Sideways  float64 `toml:"sideways"`
}

// DefaultTuning returns the tuning used by the latest revision of the game.
func DefaultTuning() Tuning {
	return Tuning{
		Locomotion: LocomotionTuning{
			StepSize:             DefaultStepSize,
			GroundAngle:          DefaultGroundAngle,
			JumpSpeed:            DefaultJumpSpeed,
			Gravity:              DefaultGravity,
			StartingSpeed:        DefaultStartingSpeed,
			MaxSpeed:             DefaultMaxSpeed,
			SpeedGrowthRate:      DefaultSpeedGrowthRate,
			SpeedShrinkRate:      DefaultSpeedShrinkRate,
			SharpTurnAngle:       DefaultSharpTurnAngle,
			Friction:             DefaultFriction,
			StopSpeed:            DefaultStopSpeed,
			Acceleration:         DefaultAcceleration,
			AccelerationScale:    DefaultAccelerationScale,
			LandingSpeedBonus:    DefaultLandingSpeedBonus,
			LandingBonusMinSpeed: DefaultLandingBonusMinSpeed,
			StickToGround:        true,
		},
		WallProbe: WallProbeTuning{Height: 50, Reach: 30, Lead: 15},
		WallRun: WallRunTuning{
			MinSpeed:            DefaultWallRunMinSpeed,
			MinAngle:            50,
			MaxAngle:            140,
			GravityScale:        DefaultWallRunGravityScale,
			EntryDamping:        0.5,
			EntryImpulse:        100,
			EntryLift:           100,
			JumpDamping:         0.5,
			JumpForward:         300,
			JumpUp:              300,
			JumpMinForwardScale: 0.5,
		},
		Climb: ClimbTuning{
			MaxCharges:        DefaultMaxClimbCharges,
			ProbeHeight:       50,
			ProbeStart:        15,
			ProbeEnd:          35,
			MaxWallAngle:      60,
			ClearanceRadius:   12,
			ClearanceDepth:    24,
			ClearanceBottom:   140,
			ClearanceTop:      180,
			PullInterval:      0.15,
			PullImpulse:       100,
			BoostScale:        0.25,
			BoostMax:          50,
			HorizontalDamping: 0,
			WallGap:           20,
			EaseRate:          10,
		},
		Vault: VaultTuning{
			BoxRadius:        20,
			FrontBoxRadius:   17.5,
			FrontBoxHeight:   30,
			MinProbeDistance: 30,
			ProbeSpeedScale:  60.0 / 500.0,
			BehindScale:      1.2,
			BehindOffset:     60,
			BehindBoxTop:     70,
			FailsafeHeight:   60,
			OverClearBottom:  50,
			OverClearTop:     80,
			OverTraceTop:     30,
			OverTraceBottom:  50,
			OverFallDrop:     40,
			OverFallSpeed:    50,
			OntoClearBottom:  45,
			OntoClearTop:     120,
			HighClearBottom:  70,
			HighClearTop:     150,
			HighForward:      40,
			GroundTraceTop:   30,
			GroundTraceDrop:  60,
			TargetLift:       13,
			OverSpeed:        200,
			OntoMinSpeed:     200,
			OntoHighSpeed:    120,
			ProgressScale:    85,
			CurveHeight:      30,
			HighStartCurve:   10,
			HighEndCurve:     -70,
			EaseRate:         50,
		},
		Dash: DashTuning{
			Cooldown:   DefaultDashCooldown,
			Duration:   DefaultDashDuration,
			Impulse:    300,
			SpeedBoost: 200,
		},
		Slide: SlideTuning{
			DuckMaxSpeed: DefaultDuckMaxSpeed,
			MinSpeed:     DefaultSlideMinSpeed,
			Impulse:      100,
			Friction:     DefaultSlideFriction,
			TailDuration: 0.5,
		},
		Footsteps: FootstepTuning{
			Stride:        70,
			WallRunStride: 60,
			ClimbInterval: 0.2,
			ReleaseRatio:  1.15,
			ReleaseSpeed:  300,
		},
		Debug:   DebugTuning{NoclipSpeed: DefaultNoclipSpeed},
		Unstick: UnstickTuning{Step: 4, MaxHeight: 32, Sideways: 16},
	}
}

// Validate reports the first tuning value that would make the simulation diverge or stall.
func (t Tuning) Validate() error {
	l := t.Locomotion
	switch {
	case l.MaxSpeed <= 0 || l.StartingSpeed <= 0:
		return simerror.New("tuning: speeds must be positive (starting=%v max=%v)", l.StartingSpeed, l.MaxSpeed)
	case l.StartingSpeed > l.MaxSpeed:
		return simerror.New("tuning: starting speed %v exceeds max speed %v", l.StartingSpeed, l.MaxSpeed)
	case l.Gravity < 0:
		return simerror.New("tuning: gravity must not be negative, got %v", l.Gravity)
	case l.StepSize < 0:
		return simerror.New("tuning: step size must not be negative, got %v", l.StepSize)
	case t.WallRun.MinAngle > t.WallRun.MaxAngle:
		return simerror.New("tuning: wall-run angle range [%v, %v] is empty", t.WallRun.MinAngle, t.WallRun.MaxAngle)
	case t.Climb.MaxCharges < 0:
		return simerror.New("tuning: climb charges must not be negative, got %d", t.Climb.MaxCharges)
	case t.Climb.PullInterval <= 0:
		return simerror.New("tuning: climb pull interval must be positive, got %v", t.Climb.PullInterval)
	case t.Vault.ProgressScale <= 0:
		return simerror.New("tuning: vault progress scale must be positive, got %v", t.Vault.ProgressScale)
	case t.Vault.OverSpeed <= 0 || t.Vault.OntoMinSpeed <= 0 || t.Vault.OntoHighSpeed <= 0:
		return simerror.New("tuning: vault speeds must be positive")
	case t.Unstick.Step <= 0:
		return simerror.New("tuning: unstick step must be positive, got %v", t.Unstick.Step)
	case t.Dash.Duration > t.Dash.Cooldown:
		return simerror.New("tuning: dash duration %v exceeds its cooldown %v", t.Dash.Duration, t.Dash.Cooldown)
	}
	return nil
}
