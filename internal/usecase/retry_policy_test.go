package usecase

import (
	"errors"
	"testing"
	"time"
)

func TestRetryPolicy_Decide(t *testing.T) {
	p := DefaultRetryPolicy(time.Second)
	transient := errors.New("timeout")

	cases := []struct {
		name    string
		attempt int
		err     error
		retry   bool
		delay   time.Duration
	}{
		{"first failure", 1, transient, true, 2 * time.Second},
		{"second failure", 2, transient, true, 5 * time.Second},
		{"exhausted", 3, transient, false, 0},
		{"permanent", 1, Permanent(ErrSnapshotNotFound), false, 0},
		{"no error", 1, nil, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := p.Decide(tc.attempt, tc.err)
			if d.Retry != tc.retry || d.Delay != tc.delay {
				t.Fatalf("expected retry=%v delay=%v, got %+v", tc.retry, tc.delay, d)
			}
		})
	}

	t.Run("schedule shorter than attempts reuses last entry", func(t *testing.T) {
		p := RetryPolicy{MaxAttempts: 6, Backoff: []time.Duration{time.Millisecond, 3 * time.Millisecond}}
		if d := p.Decide(5, transient); !d.Retry || d.Delay != 3*time.Millisecond {
			t.Fatalf("unexpected decision: %+v", d)
		}
	})
}
