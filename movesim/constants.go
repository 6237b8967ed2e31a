package movesim

const (
	DefaultTickRate = 60

	HullHalfWidth = 16.0
	HullHeight    = 64.0

	DefaultStepSize    = 26.0
	DefaultGroundAngle = 100.0
	DefaultJumpSpeed   = 300.0
	DefaultGravity     = 800.0

	DefaultStartingSpeed   = 1000.0
	DefaultMaxSpeed        = 1500.0
	DefaultSpeedGrowthRate = 2.0
	DefaultSpeedShrinkRate = 10.0
	DefaultSharpTurnAngle  = 50.0

	DefaultFriction          = 3.0
	DefaultSlideFriction     = 0.5
	DefaultStopSpeed         = 100.0
	DefaultAcceleration      = 0.02
	DefaultAccelerationScale = 45.0

	DefaultLandingSpeedBonus    = 500.0
	DefaultLandingBonusMinSpeed = 100.0

	// Ground probe offsets, relative to the feet.
	GroundProbeLift    = 2.0
	GroundProbeDepth   = 1.0
	GroundProbeMaxRise = 100.0

	DefaultWallRunMinSpeed     = 150.0
	DefaultWallRunGravityScale = 0.5
	DefaultMaxClimbCharges     = 3
	DefaultDashCooldown        = 1.0
	DefaultDashDuration        = 0.5
	DefaultDuckMaxSpeed        = 450.0
	DefaultSlideMinSpeed       = 100.0
	DefaultNoclipSpeed         = 600.0

	// Below this speed a velocity is treated as stationary.
	speedEpsilon = 1e-3
)
