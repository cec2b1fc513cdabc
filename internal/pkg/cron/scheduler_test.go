package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler_RejectsBadTriggerTime(t *testing.T) {
	t.Parallel()

	_, err := NewScheduler("half past two", time.UTC)
	assert.Error(t, err)

	_, err = NewScheduler("14:30", time.UTC)
	assert.NoError(t, err)
}

func TestNextTrigger_BeforeCutoffFiresToday(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler("14:30", time.UTC)
	require.NoError(t, err)

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	next := s.nextTrigger(now)
	assert.Equal(t, time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC), next)
}

func TestNextTrigger_PastCutoffRollsToTomorrow(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler("14:30", time.UTC)
	require.NoError(t, err)

	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	next := s.nextTrigger(now)
	assert.Equal(t, time.Date(2024, 3, 2, 14, 30, 0, 0, time.UTC), next)

	now = time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)
	next = s.nextTrigger(now)
	assert.Equal(t, time.Date(2024, 3, 2, 14, 30, 0, 0, time.UTC), next)
}

func TestNextTrigger_UsesConfiguredTimezone(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	s, err := NewScheduler("14:30", loc)
	require.NoError(t, err)

	// 08:30 UTC is 14:00 in Kolkata, so the trigger is still ahead today.
	now := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	next := s.nextTrigger(now)
	assert.Equal(t, time.Date(2024, 3, 1, 14, 30, 0, 0, loc).Unix(), next.Unix())

	// 10:00 UTC is 15:30 in Kolkata, past the cutoff.
	now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	next = s.nextTrigger(now)
	assert.Equal(t, time.Date(2024, 3, 2, 14, 30, 0, 0, loc).Unix(), next.Unix())
}

func TestRunOnce_RunsAllJobs(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler("14:30", time.UTC)
	require.NoError(t, err)

	var calls atomic.Int64
	s.AddJob("first", func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	s.AddJob("second", func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int64(2), calls.Load())
}

func TestTrigger_DropsOverlappingRun(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler("14:30", time.UTC)
	require.NoError(t, err)

	var calls atomic.Int64
	s.AddJob("counting", func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	// Simulate an in-flight run holding the guard.
	s.running.Lock()
	s.RunOnce(context.Background())
	s.running.Unlock()

	assert.Equal(t, int64(0), calls.Load(), "overlapping trigger must be dropped")

	s.RunOnce(context.Background())
	assert.Equal(t, int64(1), calls.Load())
}

func TestRunOnce_JobFailureDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler("14:30", time.UTC)
	require.NoError(t, err)

	var ran atomic.Bool
	s.AddJob("failing", func(ctx context.Context) error {
		return context.DeadlineExceeded
	})
	s.AddJob("following", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	s.RunOnce(context.Background())
	assert.True(t, ran.Load())
}

func TestStop_WaitsForLoop(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler("14:30", time.UTC)
	require.NoError(t, err)

	s.Start()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
