package rate

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultIdleTTL = 10 * time.Minute
	sweepInterval  = time.Minute
)

// Limiter limits operations based on a provided key.
type Limiter interface {
	Allow(key string) (bool, error)
}

// LimiterCtor allows the creation of a Limiter using a provided rate.
type LimiterCtor func(rate float64) Limiter

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type localRateLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time

	sync.Mutex
	limiters  map[string]*keyedLimiter
	lastSweep time.Time
}

// NewLocalRateLimiter returns an in memory limiter. Each key gets its own
// token bucket refilled at limit per second with a burst of the same size.
// Buckets idle for longer than ten minutes are forgotten.
func NewLocalRateLimiter(limit rate.Limit) Limiter {
	return newLocalRateLimiter(limit, time.Now)
}

func newLocalRateLimiter(limit rate.Limit, now func() time.Time) *localRateLimiter {
	burst := int(math.Ceil(float64(limit)))
	if burst < 1 {
		burst = 1
	}

	return &localRateLimiter{
		limit:     limit,
		burst:     burst,
		idleTTL:   defaultIdleTTL,
		now:       now,
		limiters:  make(map[string]*keyedLimiter),
		lastSweep: now(),
	}
}

// LocalRateLimiterCtor adapts NewLocalRateLimiter to a LimiterCtor.
func LocalRateLimiterCtor() LimiterCtor {
	return func(limit float64) Limiter {
		if limit <= 0 {
			return &NoLimiter{}
		}
		return NewLocalRateLimiter(rate.Limit(limit))
	}
}

// Allow implements limiter.Allow.
func (l *localRateLimiter) Allow(key string) (bool, error) {
	now := l.now()

	l.Lock()
	l.sweep(now)

	entry, ok := l.limiters[key]
	if !ok {
		entry = &keyedLimiter{
			limiter: rate.NewLimiter(l.limit, l.burst),
		}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	l.Unlock()

	return entry.limiter.AllowN(now, 1), nil
}

func (l *localRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now

	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > l.idleTTL {
			delete(l.limiters, key)
		}
	}
}

// NoLimiter never limits operations
type NoLimiter struct {
}

// Allow implements limiter.Allow.
func (n *NoLimiter) Allow(key string) (bool, error) {
	return true, nil
}
