// Package retry re-attempts fallible operations with a backoff between
// attempts. In this module it backs connection establishment only; remote
// calls themselves are never retried.
package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrFailedPermanently is returned when an operation has failed on every
// allowed attempt. It unwraps to the last attempt's error.
type ErrFailedPermanently struct {
	attempts int
	LastErr  error
}

func (e *ErrFailedPermanently) Error() string {
	return fmt.Sprintf("operation failed permanently after %d attempts: %v", e.attempts, e.LastErr)
}

func (e *ErrFailedPermanently) Unwrap() error {
	return e.LastErr
}

// Do runs op up to maxAttempts times, waiting per strategy between attempts,
// and returns the first successful result. The context cancels the waits,
// not an in-flight attempt.
func Do[T any](ctx context.Context, maxAttempts int, strategy Strategy, op func() (T, error)) (T, error) {
	var empty, ret T
	var err error
	if maxAttempts < 1 {
		return empty, fmt.Errorf("need at least 1 attempt to run op, but have %d max attempts", maxAttempts)
	}

	for i := 0; i < maxAttempts; i++ {
		if ctx.Err() != nil {
			return empty, ctx.Err()
		}
		ret, err = op()
		if err == nil {
			return ret, nil
		}
		if i != maxAttempts-1 {
			select {
			case <-ctx.Done():
				return empty, ctx.Err()
			case <-time.After(strategy.Duration(i)):
			}
		}
	}
	return empty, &ErrFailedPermanently{
		attempts: maxAttempts,
		LastErr:  err,
	}
}

// Do0 is Do for operations without a return value.
func Do0(ctx context.Context, maxAttempts int, strategy Strategy, op func() error) error {
	f := func() (any, error) {
		return nil, op()
	}
	_, err := Do(ctx, maxAttempts, strategy, f)
	return err
}

// Strategy yields the wait before the next attempt, given how many attempts
// have already failed.
type Strategy interface {
	Duration(attempt int) time.Duration
}

type fixedStrategy struct {
	dur time.Duration
}

func (s *fixedStrategy) Duration(attempt int) time.Duration {
	return s.dur
}

// Fixed waits the same duration between every attempt.
func Fixed(dur time.Duration) Strategy {
	return &fixedStrategy{dur: dur}
}

type exponentialStrategy struct {
	min    time.Duration
	max    time.Duration
	jitter time.Duration
}

func (s *exponentialStrategy) Duration(attempt int) time.Duration {
	durFloat := float64(s.min)
	durFloat += math.Pow(2, float64(attempt)) * float64(time.Second)
	dur := time.Duration(durFloat)
	if s.jitter > 0 {
		dur += time.Duration(rand.Int63n(int64(s.jitter)))
	}
	if dur > s.max {
		return s.max
	}
	return dur
}

// Exponential doubles the wait on every failed attempt, starting near min
// and capped at max, with up to 250ms of jitter.
func Exponential(min, max time.Duration) Strategy {
	return &exponentialStrategy{
		min:    min,
		max:    max,
		jitter: 250 * time.Millisecond,
	}
}
