package scheduler

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestScheduleCollectionRejectsBadExpression(t *testing.T) {
	s := NewScheduler(quietLogger())

	err := s.ScheduleCollection("not a cron", func(context.Context) error { return nil })
	assert.Error(t, err)
	assert.Empty(t, s.Entries())
}

func TestStartRequiresJobs(t *testing.T) {
	s := NewScheduler(quietLogger())
	assert.Error(t, s.Start())
	assert.False(t, s.IsRunning())
}

func TestSchedulerRunsAndStops(t *testing.T) {
	s := NewScheduler(quietLogger())

	var runs atomic.Int32
	var cancelled atomic.Bool
	require.NoError(t, s.ScheduleCollection("* * * * * *", func(ctx context.Context) error {
		runs.Add(1)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start(), "second start")
	assert.False(t, s.GetNextRun().IsZero())
	assert.Error(t, s.ScheduleCollection("0 0 4 * * *", func(context.Context) error { return nil }))

	require.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.True(t, cancelled.Load())
}

func TestSixFieldExpression(t *testing.T) {
	s := NewScheduler(quietLogger())
	require.NoError(t, s.ScheduleCollection("0 0 4 * * *", func(context.Context) error { return nil }))
	require.Len(t, s.Entries(), 1)
}
