package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles completion-service calls across all batch workers.
// The service enforces its own rate limits; staying under them locally
// avoids burning the retry budget on 429s.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter. A non-positive rate disables throttling.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a slot is available or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a call may proceed without waiting.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
