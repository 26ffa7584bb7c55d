package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

func TestNextWeekly(t *testing.T) {
	loc := time.UTC
	// 2024-01-03 es miércoles
	wed := time.Date(2024, 1, 3, 12, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, loc), NextWeekly(wed, time.Monday, 9, 0))

	monEarly := time.Date(2024, 1, 8, 8, 59, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, loc), NextWeekly(monEarly, time.Monday, 9, 0))

	monExact := time.Date(2024, 1, 8, 9, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, loc), NextWeekly(monExact, time.Monday, 9, 0))

	sun := time.Date(2024, 1, 7, 23, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, loc), NextWeekly(sun, time.Monday, 9, 0))
}

func TestScheduler_EveryRunsRepeatedly(t *testing.T) {
	s := New(logger.Nop())
	var runs atomic.Int32
	s.Every("orders", 10*time.Millisecond, time.Second, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_RunOnce(t *testing.T) {
	s := New(logger.Nop())
	s.Every("boom", time.Hour, 0, func(context.Context) error { return errors.New("falló") })
	s.Every("panic", time.Hour, 0, func(context.Context) error { panic("x") })

	assert.EqualError(t, s.RunOnce(context.Background(), "boom"), "falló")
	assert.ErrorContains(t, s.RunOnce(context.Background(), "panic"), "panic en panic")
	assert.Error(t, s.RunOnce(context.Background(), "missing"))
}

func TestScheduler_TimeoutReachesJob(t *testing.T) {
	s := New(logger.Nop())
	s.Every("slow", time.Hour, 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, s.RunOnce(context.Background(), "slow"), context.DeadlineExceeded)
}
