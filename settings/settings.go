package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/runnervision/freerun/movesim"
	"github.com/runnervision/freerun/simerror"
	"github.com/sirupsen/logrus"
)

// Settings contains everything that can be configured for a simulation run.
type Settings struct {
	Simulation struct {
		// TickRate is the amount of ticks simulated per second.
		TickRate int `toml:"tick_rate"`
		// CheckInvariants asserts the state invariants after every tick.
		CheckInvariants bool `toml:"check_invariants"`
		// ReconcileEvery is the interval in ticks between reconciliations of the predicted run.
		ReconcileEvery int `toml:"reconcile_every"`
		// HistorySize is the amount of predicted ticks kept for reconciliation.
		HistorySize int `toml:"history_size"`
	} `toml:"simulation"`
	Tuning  movesim.Tuning `toml:"tuning"`
	Logging struct {
		Level string `toml:"level"`
		// Format is either text or json.
		Format string `toml:"format"`
	} `toml:"logging"`
	Sentry struct {
		DSN         string `toml:"dsn"`
		Environment string `toml:"environment"`
	} `toml:"sentry"`
	Stats struct {
		Enabled bool   `toml:"enabled"`
		Addr    string `toml:"addr"`
	} `toml:"stats"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{Tuning: movesim.DefaultTuning()}
	s.Simulation.TickRate = movesim.DefaultTickRate
	s.Simulation.ReconcileEvery = 10
	s.Simulation.HistorySize = 2 * movesim.DefaultTickRate
	s.Logging.Level = "info"
	s.Logging.Format = "text"
	s.Sentry.Environment = "development"
	s.Stats.Addr = "localhost:8080"
	return s
}

// Validate returns an error if the settings cannot be used to run a simulation.
func (s Settings) Validate() error {
	switch {
	case s.Simulation.TickRate <= 0:
		return simerror.New("settings: tick rate must be positive, got %d", s.Simulation.TickRate)
	case s.Simulation.ReconcileEvery <= 0:
		return simerror.New("settings: reconcile interval must be positive, got %d", s.Simulation.ReconcileEvery)
	case s.Simulation.HistorySize < s.Simulation.ReconcileEvery:
		return simerror.New("settings: history of %d ticks cannot cover the reconcile interval of %d", s.Simulation.HistorySize, s.Simulation.ReconcileEvery)
	case s.Logging.Format != "text" && s.Logging.Format != "json":
		return simerror.New("settings: unknown log format %q", s.Logging.Format)
	}
	if _, err := logrus.ParseLevel(s.Logging.Level); err != nil {
		return simerror.New("settings: %v", err)
	}
	if err := s.Tuning.Validate(); err != nil {
		return simerror.New("settings: %v", err)
	}
	return nil
}

// SimulationOptions returns the simulator options described by the settings. Ability transitions
// are traced to log at debug level.
func (s Settings) SimulationOptions(log logrus.FieldLogger) movesim.SimulationOptions {
	opts := movesim.SimulationOptions{
		TickDelta:       1 / float64(s.Simulation.TickRate),
		CheckInvariants: s.Simulation.CheckInvariants,
	}
	if log != nil {
		opts.Debugf = log.Debugf
	}
	return opts
}

// Logger returns a logger configured by the logging settings.
func (s Settings) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(s.Logging.Level)
	if err != nil {
		return nil, simerror.New("settings: %v", err)
	}
	log := logrus.New()
	log.Level = level
	if s.Logging.Format == "json" {
		log.Formatter = &logrus.JSONFormatter{}
	} else {
		log.Formatter = &logrus.TextFormatter{ForceColors: true}
	}
	return log, nil
}

// Parse decodes settings from TOML. Missing keys keep their default value.
func Parse(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, simerror.New("decode settings: %v", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load will load the settings from the file at path, and return an error if the file does not
// exist.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

// LoadOrCreate loads the settings from the file at path, creating it with the default settings
// first if it does not exist yet.
func LoadOrCreate(path string) (Settings, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		data, err := toml.Marshal(DefaultSettings())
		if err != nil {
			return Settings{}, fmt.Errorf("encode default settings: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return Settings{}, fmt.Errorf("create default settings: %w", err)
		}
	}
	return Load(path)
}
