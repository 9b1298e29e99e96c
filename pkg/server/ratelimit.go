package server

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxLimiters bounds the per-owner limiter map; past it the map is reset.
const maxLimiters = 10000

// ownerLimiter keeps one token bucket per owner.
type ownerLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newOwnerLimiter(perSecond float64, burst int) *ownerLimiter {
	l := &ownerLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Inf,
		burst:    max(burst, 1),
	}
	if perSecond > 0 {
		l.rate = rate.Limit(perSecond)
	}
	return l
}

// allow reports whether owner may write now. When it may not, retryAfter is
// the whole number of seconds until a token frees up.
func (l *ownerLimiter) allow(owner string) (ok bool, retryAfter int) {
	if l.rate == rate.Inf {
		return true, 0
	}

	lim := l.get(owner)
	if lim.Allow() {
		return true, 0
	}
	wait := time.Duration(float64(time.Second) / float64(l.rate))
	return false, max(int(math.Ceil(wait.Seconds())), 1)
}

func (l *ownerLimiter) get(owner string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[owner]
	if !ok {
		if len(l.limiters) >= maxLimiters {
			l.limiters = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[owner] = lim
	}
	return lim
}
