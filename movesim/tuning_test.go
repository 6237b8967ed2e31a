package movesim

import "testing"

func TestDefaultTuningValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("expected default tuning to be valid: %v", err)
	}
}

func TestTuningValidate(t *testing.T) {
	tests := map[string]func(*Tuning){
		"negative speed":         func(t *Tuning) { t.Locomotion.MaxSpeed = -1 },
		"starting above max":     func(t *Tuning) { t.Locomotion.StartingSpeed = t.Locomotion.MaxSpeed + 1 },
		"negative gravity":       func(t *Tuning) { t.Locomotion.Gravity = -800 },
		"negative step":          func(t *Tuning) { t.Locomotion.StepSize = -1 },
		"empty wall-run range":   func(t *Tuning) { t.WallRun.MinAngle, t.WallRun.MaxAngle = 140, 50 },
		"negative climb charges": func(t *Tuning) { t.Climb.MaxCharges = -1 },
		"zero pull interval":     func(t *Tuning) { t.Climb.PullInterval = 0 },
		"zero vault scale":       func(t *Tuning) { t.Vault.ProgressScale = 0 },
		"zero vault speed":       func(t *Tuning) { t.Vault.OverSpeed = 0 },
		"zero unstick step":      func(t *Tuning) { t.Unstick.Step = 0 },
		"dash outlasts cooldown": func(t *Tuning) { t.Dash.Duration = t.Dash.Cooldown + 1 },
	}
	for name, mutate := range tests {
		tuning := DefaultTuning()
		mutate(&tuning)
		if err := tuning.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
