package worker

import (
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/runnervision/freerun/simerror"
	"golang.org/x/sync/errgroup"
)

// Pool runs jobs on a bounded number of goroutines. A job that panics is reported to sentry and
// returned from Wait as an error.
type Pool struct {
	group errgroup.Group
}

// New returns a pool running at most limit jobs at once. A limit of zero or less uses one job per
// CPU.
func New(limit int) *Pool {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	p := &Pool{}
	p.group.SetLimit(limit)
	return p
}

// Submit runs f in the pool, blocking while the pool is full. To be used by a function that may be
// CPU intensive.
func (p *Pool) Submit(name string, f func() error) {
	p.group.Go(func() error {
		return run(name, f)
	})
}

// Wait blocks until every submitted job returned and returns the first error.
func (p *Pool) Wait() error {
	return p.group.Wait()
}

func run(name string, f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("job", name)
			})
			hub.Recover(r)
			hub.Flush(time.Second * 5)

			err = simerror.New("job %s panicked: %v", name, r)
		}
	}()
	return f()
}
