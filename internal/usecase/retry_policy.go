package usecase

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy bounds how a failed quote computation is retried.
type RetryPolicy struct {
	MaxAttempts int
	// Backoff[i] is the wait after the (i+1)-th failed attempt. The last
	// entry is reused when attempts outnumber the schedule.
	Backoff []time.Duration
}

// DefaultRetryPolicy is 3 attempts with a 2/5/10 backoff in units of unit.
func DefaultRetryPolicy(unit time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     []time.Duration{2 * unit, 5 * unit, 10 * unit},
	}
}

// RetryDecision is the outcome of Decide. Retry false means terminal.
type RetryDecision struct {
	Retry bool
	Delay time.Duration
}

// Decide maps (attempt, err) to retry-or-terminal. attempt is 1-based and
// counts the attempt that just failed. Errors wrapping ErrPermanent are
// terminal immediately.
func (p RetryPolicy) Decide(attempt int, err error) RetryDecision {
	if err == nil || errors.Is(err, ErrPermanent) || attempt >= p.MaxAttempts {
		return RetryDecision{}
	}
	return RetryDecision{Retry: true, Delay: p.delay(attempt)}
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	if len(p.Backoff) == 0 {
		return 0
	}
	idx := attempt - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.Backoff) {
		idx = len(p.Backoff) - 1
	}
	return p.Backoff[idx]
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
