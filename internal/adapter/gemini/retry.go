package gemini

import (
	"context"
	"time"
)

// Retry bounds every provider call: per-attempt timeout, fixed delay between
// attempts. Provider errors are otherwise propagated unchanged.
type Retry struct {
	Attempts int
	Delay    time.Duration
	Timeout  time.Duration
}

func (r Retry) normalize() Retry {
	if r.Attempts <= 0 {
		r.Attempts = 1
	}
	if r.Timeout <= 0 {
		r.Timeout = 60 * time.Second
	}
	return r
}

func (r Retry) do(ctx context.Context, call func(ctx context.Context) error) error {
	r = r.normalize()

	var lastErr error
	for i := 0; i < r.Attempts; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, r.Timeout)
		err := call(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return lastErr
		}
		if i < r.Attempts-1 {
			time.Sleep(r.Delay)
		}
	}
	return lastErr
}
