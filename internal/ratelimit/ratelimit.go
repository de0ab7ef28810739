// Package ratelimit wraps golang.org/x/time/rate with per-minute semantics.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles an action to a fixed number of events per minute.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter allowing perMinute events per minute. The burst is
// a tenth of the per-minute allowance, with a floor of one so a fresh
// limiter always admits the first call.
func New(perMinute int) *Limiter {
	burst := perMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst),
	}
}

// Allow reports whether an event may happen now without blocking.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Wait blocks until a token is available or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Tokens returns the number of tokens currently available.
func (l *Limiter) Tokens() float64 {
	return l.limiter.Tokens()
}
