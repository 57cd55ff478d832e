package connectivity

import (
	"context"
	"errors"
	"time"
)

// ErrRetriesExhausted is returned by a bounded RetryPolicy that gave up.
var ErrRetriesExhausted = errors.New("connectivity: retries exhausted")

// RetryPolicy is a fixed-delay retry schedule. MaxAttempts of 0 retries
// forever, which is what the station runs with; tests bound it.
type RetryPolicy struct {
	Delay       time.Duration
	MaxAttempts int
}

// FixedRetry returns an unbounded policy waiting delay between attempts.
func FixedRetry(delay time.Duration) RetryPolicy {
	return RetryPolicy{Delay: delay}
}

// sleepFunc waits for d or until ctx is done. Returns false if cancelled.
type sleepFunc func(ctx context.Context, d time.Duration) bool

// Do calls fn until it succeeds, the policy gives up, or ctx is cancelled.
// fn receives the 1-based attempt number.
func (p RetryPolicy) Do(ctx context.Context, sleep sleepFunc, fn func(attempt int) error) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn(attempt)
		if err == nil {
			return nil
		}
		if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
			return errors.Join(ErrRetriesExhausted, err)
		}
		if !sleep(ctx, p.Delay) {
			return ctx.Err()
		}
	}
}

// sleepCtx sleeps for d or until ctx is cancelled. Returns false if cancelled.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
