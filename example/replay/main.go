package main

import (
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/runnervision/freerun/movesim"
	"github.com/runnervision/freerun/omath"
	"github.com/runnervision/freerun/prediction"
	"github.com/runnervision/freerun/scenario"
	"github.com/runnervision/freerun/settings"
	"github.com/runnervision/freerun/worker"
	"github.com/sirupsen/logrus"
)

// The following program replays scenario files against the movement simulation. Every scenario is
// run on an authoritative simulator and checked against its expectations, while a predicted copy
// of the same run is reconciled with the authority at a fixed interval.
func main() {
	settingsPath := flag.String("settings", "settings.toml", "path of the settings file, created if missing")
	stats := flag.Bool("stats", false, "serve runtime statistics while replaying")
	jobs := flag.Int("jobs", 0, "amount of scenarios replayed at once, zero for one per CPU")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Usage: ./replay [-settings settings.toml] [-stats] [-jobs n] <scenario.yaml>...")
		os.Exit(2)
	}

	s, err := settings.LoadOrCreate(*settingsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := s.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if s.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         s.Sentry.DSN,
			Environment: s.Sentry.Environment,
		}); err != nil {
			log.Fatalf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(time.Second * 2)
	}

	if *stats || s.Stats.Enabled {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(s.Stats.Addr))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Infof("serving statistics on http://%s/debug/statsview", s.Stats.Addr)
	}

	var failed atomic.Int32
	pool := worker.New(*jobs)
	for _, path := range flag.Args() {
		pool.Submit(path, func() error {
			if err := replay(path, s, log); err != nil {
				failed.Add(1)
				log.WithField("file", path).Error(err)
			}
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		log.Errorf("replay crashed: %v", err)
		failed.Add(1)
	}

	if n := failed.Load(); n > 0 {
		log.Errorf("%d of %d scenarios failed", n, flag.NArg())
		sentry.Flush(time.Second * 2)
		os.Exit(1)
	}
	log.Infof("%d scenarios passed", flag.NArg())
}

// replay runs the scenario at path and returns the first failed expectation, or an error if the
// predicted run did not end in the authoritative state.
func replay(path string, s settings.Settings, log *logrus.Logger) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}
	l := log.WithField("scenario", sc.Name)
	start := time.Now()

	authority := newSimulator(sc, s, s.SimulationOptions(l))
	state := sc.SpawnState(s.Tuning)
	trace, runErr := sc.Run(authority, state)

	corrections, err := predict(sc, s, l)
	if err != nil {
		return err
	}
	errs := omath.Summarize(corrections)

	final := trace[len(trace)-1]
	l.WithFields(logrus.Fields{
		"ticks":       len(trace),
		"position":    final.Position,
		"mode":        state.Kind(),
		"corrections": errs.Count,
		"max_error":   errs.Max,
		"mean_error":  errs.Mean,
		"elapsed":     time.Since(start),
	}).Info("scenario replayed")
	return runErr
}

// predict runs the scenario inputs on a predicting client and a separate authority, reconciling
// the two every ReconcileEvery ticks. It returns the position error of every correction the client
// needed.
func predict(sc *scenario.Scenario, s settings.Settings, log *logrus.Entry) ([]float64, error) {
	opts := s.SimulationOptions(nil)
	client := prediction.NewPredictor(newSimulator(sc, s, opts), s.Simulation.HistorySize, log)
	server := newSimulator(sc, s, opts)

	predicted, confirmed := sc.SpawnState(s.Tuning), sc.SpawnState(s.Tuning)
	var corrections []float64
	for i, in := range sc.Inputs() {
		client.Predict(predicted, in)
		server.SimulateReplay(confirmed, in)
		if (i+1)%s.Simulation.ReconcileEvery != 0 {
			continue
		}
		c, err := client.Reconcile(*confirmed)
		if err != nil {
			return corrections, err
		}
		if c.Corrected {
			corrections = append(corrections, c.PositionError)
			*predicted = c.State
		}
	}
	if movesim.Checksum(predicted) != movesim.Checksum(confirmed) {
		return corrections, fmt.Errorf("prediction of %s ended at %v, authority at %v", sc.Name, predicted.Position, confirmed.Position)
	}
	return corrections, nil
}

func newSimulator(sc *scenario.Scenario, s settings.Settings, opts movesim.SimulationOptions) *movesim.Simulator {
	sim := movesim.NewSimulator(sc.World(), opts)
	sim.Tuning = s.Tuning
	return sim
}
