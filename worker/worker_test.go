package worker

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/runnervision/freerun/simerror"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsEveryJob(t *testing.T) {
	p := New(2)
	var done, running, peak atomic.Int32
	for i := 0; i < 20; i++ {
		p.Submit("count", func() error {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			done.Add(1)
			running.Add(-1)
			return nil
		})
	}
	require.NoError(t, p.Wait())
	require.EqualValues(t, 20, done.Load())
	require.LessOrEqual(t, peak.Load(), int32(2))
}

func TestPoolReturnsFirstError(t *testing.T) {
	p := New(1)
	first := errors.New("first")
	p.Submit("a", func() error { return first })
	p.Submit("b", func() error { return errors.New("second") })
	require.ErrorIs(t, p.Wait(), first)
}

func TestPoolRecoversPanics(t *testing.T) {
	p := New(0)
	p.Submit("explode", func() error { panic("boom") })

	err := p.Wait()
	var serr *simerror.Error
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "job explode panicked: boom", err.Error())
}
