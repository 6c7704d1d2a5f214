package ratelimit

import (
	"context"
	"time"

	"github.com/iambatul/sishairven/internal/logger"
)

// Endpoint classes with pre-bound policies, so call sites select a
// policy by name instead of repeating magic numbers.
const (
	Booking         = "booking"
	Newsletter      = "newsletter"
	ClickTracking   = "click-tracking"
	SessionTracking = "session-tracking"
	Proxy           = "proxy"
	Login           = "login"
)

func defaultPolicies() map[string]Options {
	return map[string]Options{
		Booking:         {MaxRequests: 5, Window: 5 * time.Minute, Burst: 1},
		Newsletter:      {MaxRequests: 3, Window: 10 * time.Minute, Burst: 1},
		ClickTracking:   {MaxRequests: 120, Window: time.Minute, Burst: 20},
		SessionTracking: {MaxRequests: 30, Window: time.Minute, Burst: 5},
		Proxy:           {MaxRequests: 10, Window: time.Minute, Burst: 2},
		Login:           {MaxRequests: 5, Window: 5 * time.Minute, Burst: 1},
	}
}

// Registry holds the named limiter instances. Each name owns its own
// buckets, so exhausting one class never affects another for the same
// caller.
type Registry struct {
	limiters map[string]*Limiter
}

type RegistryOption func(map[string]Options)

// WithPolicy overrides or adds one named policy.
func WithPolicy(name string, opts Options) RegistryOption {
	return func(policies map[string]Options) {
		policies[name] = opts
	}
}

func NewRegistry(trustProxy bool, opts ...RegistryOption) *Registry {
	policies := defaultPolicies()
	for _, opt := range opts {
		opt(policies)
	}

	limiters := make(map[string]*Limiter, len(policies))
	for name, policy := range policies {
		lim := New(name, policy)
		lim.trustProxy = trustProxy
		limiters[name] = lim
	}

	return &Registry{limiters: limiters}
}

// Get returns the named limiter, or nil for an unknown name. Callers
// pass the package constants; an unknown name is a programming error
// surfaced by the middleware.
func (r *Registry) Get(name string) *Limiter {
	return r.limiters[name]
}

// StartJanitor prunes idle buckets across all limiters until the
// context is cancelled, bounding memory under a churn of distinct
// client addresses.
func (r *Registry) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				total := 0
				for _, lim := range r.limiters {
					total += lim.Prune()
				}
				if total > 0 {
					logger.Info("idle rate-limit buckets pruned", map[string]any{
						"removed": total,
					})
				}
			}
		}
	}()
}
