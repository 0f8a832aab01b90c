package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestScheduler_RunsJob(t *testing.T) {
	s := New(nil, time.Second)
	var runs atomic.Int32
	require.NoError(t, s.Add("sweep", "@every 1s", func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}))

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := New(nil, 0)
	err := s.Add("sweep", "every minute", func(context.Context) error { return nil })
	assert.ErrorContains(t, err, "sweep")
}

func TestScheduler_LogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(zap.New(core), time.Second)
	require.NoError(t, s.Add("sweep", "@every 1s", func(context.Context) error {
		return errors.New("db down")
	}))

	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("job failed").Len() >= 1
	}, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	s := New(nil, 0)
	started := make(chan struct{})
	var cancelled atomic.Bool
	require.NoError(t, s.Add("slow", "@every 1s", func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}))

	s.Start()
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job never started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.True(t, cancelled.Load())
}
