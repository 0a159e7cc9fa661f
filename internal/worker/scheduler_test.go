package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRejectsBadSpecAndDuplicates(t *testing.T) {
	s := NewScheduler()
	noop := func(context.Context) error { return nil }

	require.NoError(t, s.Add(Job{Name: "maintenance", Spec: "0 3 * * *", Run: noop}))
	assert.Error(t, s.Add(Job{Name: "maintenance", Spec: "@daily", Run: noop}))
	assert.Error(t, s.Add(Job{Name: "broken", Spec: "every tuesday", Run: noop}))

	assert.Equal(t, []string{"maintenance"}, s.Jobs())
}

func TestTrigger(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	boom := errors.New("boom")

	require.NoError(t, s.Add(Job{Name: "count", Spec: "@hourly", Run: func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}}))
	require.NoError(t, s.Add(Job{Name: "fail", Spec: "@hourly", Run: func(ctx context.Context) error {
		return boom
	}}))

	require.NoError(t, s.Trigger(t.Context(), "count"))
	assert.Equal(t, int32(1), runs.Load())
	assert.ErrorIs(t, s.Trigger(t.Context(), "fail"), boom)
	assert.Error(t, s.Trigger(t.Context(), "missing"))
}

func TestStartStop(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Add(Job{Name: "tick", Spec: "@every 1h", Run: func(context.Context) error { return nil }}))

	s.Start()
	s.Start()
	next := s.Next("tick")
	assert.WithinDuration(t, time.Now().Add(time.Hour), next, time.Minute)
	assert.True(t, s.Next("missing").IsZero())

	s.Stop()
	s.Stop()
}

func TestRunHonoursStop(t *testing.T) {
	s := NewScheduler()
	started := make(chan struct{})
	s.jobs["slow"] = Job{Name: "slow", Run: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}}

	done := make(chan struct{})
	go func() {
		s.run(s.jobs["slow"])
		close(done)
	}()

	<-started
	s.cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not observe cancellation")
	}
}
