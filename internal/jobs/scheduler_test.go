package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTasks struct {
	stale  atomic.Int32
	purged atomic.Int32
	fail   bool
}

func (c *countingTasks) ReportStalePaidBills(ctx context.Context) (int, error) {
	c.stale.Add(1)
	if c.fail {
		return 0, errors.New("db down")
	}
	return 0, nil
}

func (c *countingTasks) PurgeIdempotencyKeys(ctx context.Context) (int64, error) {
	c.purged.Add(1)
	return 0, nil
}

func TestRunOnceRunsAllTasks(t *testing.T) {
	tasks := &countingTasks{fail: true}
	s := NewScheduler(tasks, "@every 1h")

	s.RunOnce()

	assert.Equal(t, int32(1), tasks.stale.Load())
	assert.Equal(t, int32(1), tasks.purged.Load())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&countingTasks{}, "not a schedule")
	assert.Error(t, s.Start())
}

func TestSchedulerRunsOnSchedule(t *testing.T) {
	tasks := &countingTasks{}
	s := NewScheduler(tasks, "* * * * * *")
	require.NoError(t, s.Start())
	assert.False(t, s.Next().IsZero())

	assert.Eventually(t, func() bool {
		return tasks.purged.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)

	s.Stop()
	assert.Greater(t, tasks.stale.Load(), int32(0))
}
