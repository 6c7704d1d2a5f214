package ratelimit

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/iambatul/sishairven/internal/security"
)

// Options is the policy for one limiter instance.
type Options struct {
	MaxRequests int           // admissions per window once burst is spent
	Window      time.Duration // window length
	Burst       int           // extra admissions at the start of each window
}

// Result is the admission decision for a single request. It is
// returned on both outcomes so handlers can attach rate-limit headers
// to every response.
type Result struct {
	Allowed    bool
	Limit      int // total admissible this window (MaxRequests + Burst)
	Remaining  int
	RetryAfter time.Duration // until the window resets; zero when allowed
}

// LimitError is the rejection carried to the HTTP boundary as a 429.
type LimitError struct {
	RetryAfter time.Duration
	Policy     Options
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %s", e.RetryAfter)
}

type bucket struct {
	windowStart time.Time
	count       int
	lastSeen    time.Time
}

// Limiter tracks admissions per key within a fixed window. Burst
// allowance replenishes with each new window, so a key converges to
// MaxRequests per window once its burst is spent.
type Limiter struct {
	name string
	opts Options

	mu      sync.Mutex
	buckets map[string]*bucket

	trustProxy bool
	now        func() time.Time
}

func New(name string, opts Options) *Limiter {
	return &Limiter{
		name:    name,
		opts:    opts,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *Limiter) Name() string     { return l.name }
func (l *Limiter) Options() Options { return l.opts }

// Allow decides admission for a key. Check-then-increment happens in
// one critical section, so concurrent requests for the same key can
// never both slip past the limit.
func (l *Limiter) Allow(key string) Result {
	now := l.now()
	limit := l.opts.MaxRequests + l.opts.Burst

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) >= l.opts.Window {
		// New window; burst allowance replenishes with it.
		b = &bucket{windowStart: now}
		l.buckets[key] = b
	}
	b.lastSeen = now

	if b.count < limit {
		b.count++
		return Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - b.count,
		}
	}

	return Result{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		RetryAfter: b.windowStart.Add(l.opts.Window).Sub(now),
	}
}

// Apply derives the caller's key from the request and decides
// admission. Rejection returns a *LimitError for the boundary to map
// to 429; the Result is valid either way.
func (l *Limiter) Apply(r *http.Request) (Result, error) {
	key := Key(l.name, security.ClientIP(r, l.trustProxy))

	res := l.Allow(key)
	if !res.Allowed {
		return res, &LimitError{
			RetryAfter: res.RetryAfter,
			Policy:     l.opts,
		}
	}
	return res, nil
}

// Prune drops buckets idle for longer than one full window; such keys
// carry no admission history worth keeping.
func (l *Limiter) Prune() int {
	cutoff := l.now().Add(-l.opts.Window)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Keys reports the live bucket count.
func (l *Limiter) Keys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Key is the identifier a bucket is tracked against: limiter name plus
// a hashed caller address, so limits stay independent across named
// limiters and raw addresses stay out of the map.
func Key(name, clientIP string) string {
	return name + ":" + security.HashClientIP(clientIP)
}
