package session

import (
	"context"
	"sync"
	"time"

	"github.com/iambatul/sishairven/internal/auth"
	"github.com/iambatul/sishairven/internal/logger"
)

const (
	// DefaultTTL is how long a session stays valid after login.
	DefaultTTL = 24 * time.Hour

	// Abandoned sessions are evicted in bulk on this cadence; lookups
	// evict lazily in between, so a delayed sweep only costs memory.
	defaultSweepEvery = time.Hour
)

// MemoryStore is a process-wide token -> session map. It is the only
// owner of session state and is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session

	ttl        time.Duration
	sweepEvery time.Duration
	now        func() time.Time
}

type MemoryStoreOption func(*MemoryStore)

func WithTTL(d time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) { s.ttl = d }
}

func WithSweepInterval(d time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) { s.sweepEvery = d }
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		sessions:   make(map[string]Session),
		ttl:        DefaultTTL,
		sweepEvery: defaultSweepEvery,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, identity auth.Identity) (string, error) {
	token := GenerateToken()

	s.mu.Lock()
	s.sessions[token] = Session{
		Identity:  identity,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()

	return token, nil
}

func (s *MemoryStore) Validate(_ context.Context, token string) (auth.Identity, bool) {
	if token == "" {
		return auth.Identity{}, false
	}

	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return auth.Identity{}, false
	}

	if !s.now().Before(sess.ExpiresAt) {
		// Lazy eviction on the lookup path.
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return auth.Identity{}, false
	}

	return sess.Identity, true
}

func (s *MemoryStore) Revoke(_ context.Context, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[token]
	if ok {
		delete(s.sessions, token)
	}
	return ok
}

// Len reports the number of live entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes every expired entry in one pass.
func (s *MemoryStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// StartSweeper runs the periodic sweep until the context is cancelled.
// It owns its goroutine; callers stop it through ctx at shutdown.
func (s *MemoryStore) StartSweeper(ctx context.Context) {
	if s.sweepEvery <= 0 {
		return
	}

	t := time.NewTicker(s.sweepEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := s.Sweep(); n > 0 {
					logger.Info("expired sessions swept", map[string]any{
						"removed": n,
					})
				}
			}
		}
	}()
}
