package middleware

import (
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	maxTrackedUsers = 10000
	limiterIdleTTL  = 5 * time.Minute
	minBurst        = 3
)

// ErrRateLimited is returned by Limiter.Allow when the key is over budget.
var ErrRateLimited = errors.New("rate limit exceeded")

// Limiter is a token bucket per key, forgotten after limiterIdleTTL.
type Limiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func NewLimiter(requestsPerMin int) *Limiter {
	burst := requestsPerMin / 10
	if burst < minBurst {
		burst = minBurst
	}
	return &Limiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxTrackedUsers, nil, limiterIdleTTL),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

// Allow consumes one token for key. A nil Limiter allows everything.
func (rl *Limiter) Allow(key string) error {
	if rl == nil {
		return nil
	}
	if !rl.bucket(key).Allow() {
		return ErrRateLimited
	}
	return nil
}

// bucket returns the limiter for key, creating it once.
func (rl *Limiter) bucket(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter
}
