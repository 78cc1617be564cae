package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingActivation struct{ calls atomic.Int64 }

func (a *countingActivation) Execute(context.Context) (int64, error) {
	a.calls.Add(1)
	return 0, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestScheduler_RunsActivationImmediately(t *testing.T) {
	act := &countingActivation{}

	s, err := New(act, time.Hour, time.Second, nopLogger{})
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return act.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	assert.NoError(t, s.Stop())
}
