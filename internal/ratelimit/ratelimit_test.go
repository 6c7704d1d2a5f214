package ratelimit

import (
	"context"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(start time.Time) (*time.Time, func() time.Time) {
	now := start
	return &now, func() time.Time { return now }
}

func TestAllowBaseWindow(t *testing.T) {
	l := New("test", Options{MaxRequests: 5, Window: time.Second})
	now, clock := fixedClock(time.Now())
	l.now = clock

	for i := 0; i < 5; i++ {
		res := l.Allow("k")
		require.True(t, res.Allowed, "request %d", i+1)
		assert.Equal(t, 5, res.Limit)
		assert.Equal(t, 4-i, res.Remaining)
	}

	res := l.Allow("k")
	require.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, res.RetryAfter, time.Second)

	// A full window later the same key is admitted again.
	*now = now.Add(time.Second)
	assert.True(t, l.Allow("k").Allowed)
}

func TestAllowBurst(t *testing.T) {
	l := New("test", Options{MaxRequests: 5, Window: time.Second, Burst: 2})
	_, clock := fixedClock(time.Now())
	l.now = clock

	for i := 0; i < 7; i++ {
		assert.True(t, l.Allow("k").Allowed, "request %d", i+1)
	}
	assert.False(t, l.Allow("k").Allowed, "8th request exceeds max+burst")
}

func TestBurstReplenishesWithWindow(t *testing.T) {
	l := New("test", Options{MaxRequests: 2, Window: time.Second, Burst: 1})
	now, clock := fixedClock(time.Now())
	l.now = clock

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("k").Allowed)
	}
	require.False(t, l.Allow("k").Allowed)

	*now = now.Add(time.Second)
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("k").Allowed, "burst replenishes with the new window")
	}
	assert.False(t, l.Allow("k").Allowed)
}

func TestDistinctKeysNeverShareABucket(t *testing.T) {
	l := New("test", Options{MaxRequests: 1, Window: time.Minute})

	require.True(t, l.Allow("a").Allowed)
	require.False(t, l.Allow("a").Allowed)

	assert.True(t, l.Allow("b").Allowed, "exhausting key a must not affect key b")
}

func TestAllowLinearizablePerKey(t *testing.T) {
	l := New("test", Options{MaxRequests: 50, Window: time.Minute})

	var admitted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if l.Allow("k").Allowed {
					admitted.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), admitted.Load(), "no lost updates past the limit")
}

func TestApply(t *testing.T) {
	l := New("booking", Options{MaxRequests: 1, Window: time.Minute})

	r := httptest.NewRequest("POST", "/api/book", nil)
	r.RemoteAddr = "203.0.113.7:40000"

	res, err := l.Apply(r)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = l.Apply(r)
	require.False(t, res.Allowed)

	var limitErr *LimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Greater(t, limitErr.RetryAfter, time.Duration(0))
	assert.Equal(t, 1, limitErr.Policy.MaxRequests)

	// Another caller is unaffected.
	other := httptest.NewRequest("POST", "/api/book", nil)
	other.RemoteAddr = "203.0.113.8:40000"
	_, err = l.Apply(other)
	assert.NoError(t, err)
}

func TestPrune(t *testing.T) {
	l := New("test", Options{MaxRequests: 5, Window: time.Second})
	now, clock := fixedClock(time.Now())
	l.now = clock

	l.Allow("stale")
	*now = now.Add(2 * time.Second)
	l.Allow("fresh")

	assert.Equal(t, 1, l.Prune())
	assert.Equal(t, 1, l.Keys())
}

func TestKeyDerivation(t *testing.T) {
	a := Key("booking", "203.0.113.7")
	b := Key("newsletter", "203.0.113.7")
	c := Key("booking", "203.0.113.8")

	assert.NotEqual(t, a, b, "same caller, different limiter")
	assert.NotEqual(t, a, c, "same limiter, different caller")
	assert.Equal(t, a, Key("booking", "203.0.113.7"), "stable per caller per limiter")
	assert.NotContains(t, a, "203.0.113.7", "raw address never appears in the key")
}

func TestWriteHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	WriteHeaders(w.Header(), Result{Allowed: true, Limit: 6, Remaining: 2})

	assert.Equal(t, "6", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Remaining"))
	assert.Empty(t, w.Header().Get("Retry-After"))

	w = httptest.NewRecorder()
	WriteHeaders(w.Header(), Result{Limit: 6, RetryAfter: 1500 * time.Millisecond})

	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", w.Header().Get("Retry-After"), "rounded up to whole seconds")
}

func TestRegistryPolicies(t *testing.T) {
	reg := NewRegistry(false)

	booking := reg.Get(Booking)
	require.NotNil(t, booking)
	assert.Equal(t, 5, booking.Options().MaxRequests)
	assert.Equal(t, 5*time.Minute, booking.Options().Window)

	assert.Nil(t, reg.Get("unknown"))
}

func TestRegistryOverride(t *testing.T) {
	reg := NewRegistry(false, WithPolicy(Booking, Options{
		MaxRequests: 9, Window: time.Minute, Burst: 1,
	}))

	assert.Equal(t, 9, reg.Get(Booking).Options().MaxRequests)
	assert.Equal(t, 3, reg.Get(Newsletter).Options().MaxRequests, "other policies keep defaults")
}

func TestRegistryJanitorLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := NewRegistry(false, WithPolicy("short", Options{
		MaxRequests: 5, Window: 10 * time.Millisecond,
	}))
	lim := reg.Get("short")

	lim.Allow("a")
	lim.Allow("b")
	require.Equal(t, 2, lim.Keys())

	reg.StartJanitor(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return lim.Keys() == 0 },
		time.Second, 5*time.Millisecond, "janitor prunes idle buckets")

	cancel()
	time.Sleep(20 * time.Millisecond)

	lim.Allow("c")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, lim.Keys(), "no pruning once the context is cancelled")
}

func TestRegistryIsolationAcrossNames(t *testing.T) {
	reg := NewRegistry(false,
		WithPolicy("a", Options{MaxRequests: 1, Window: time.Minute}),
		WithPolicy("b", Options{MaxRequests: 1, Window: time.Minute}),
	)

	r := httptest.NewRequest("POST", "/", nil)
	r.RemoteAddr = "203.0.113.7:40000"

	_, err := reg.Get("a").Apply(r)
	require.NoError(t, err)
	_, err = reg.Get("a").Apply(r)
	require.Error(t, err)

	_, err = reg.Get("b").Apply(r)
	assert.NoError(t, err, "limits are independent across named limiters")
}
