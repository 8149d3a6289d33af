package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_TriggerSkipsOverlap(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var runs atomic.Int32

	s := NewScheduler("@daily", func(ctx context.Context) error {
		runs.Add(1)
		close(started)
		<-release
		return nil
	})

	done := make(chan bool)
	go func() { done <- s.Trigger(context.Background()) }()
	<-started

	assert.False(t, s.Trigger(context.Background()), "Second run must not start while the first is active")

	close(release)
	assert.True(t, <-done)
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_TriggerReportsErrors(t *testing.T) {
	s := NewScheduler("@daily", func(ctx context.Context) error {
		return errors.New("aggregation failed")
	})
	assert.True(t, s.Trigger(context.Background()), "A failed run still counts as a run")
}

func TestScheduler_TriggerCancelled(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler("@daily", func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, s.Trigger(ctx))
	assert.Zero(t, runs.Load())
}

func TestScheduler_StartInvalidSpec(t *testing.T) {
	s := NewScheduler("not a cron spec", func(ctx context.Context) error { return nil })
	assert.Error(t, s.Start(context.Background()))
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler("@every 1s", func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}
