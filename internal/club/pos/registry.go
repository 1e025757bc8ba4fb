package pos

import (
	"sync"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultMaxSessions = 1024
	DefaultSessionTTL  = 30 * time.Minute
)

type session struct {
	mu     sync.Mutex
	clubID string
	rec    *Reconciler
}

// Registry keeps one Reconciler per signed-in user. Sessions idle for
// longer than the TTL are dropped, as are the least recently used ones
// once the registry is full.
type Registry struct {
	mu       sync.Mutex
	sessions *expirable.LRU[string, *session]
}

func NewRegistry(maxSessions int, ttl time.Duration) *Registry {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		sessions: expirable.NewLRU[string, *session](maxSessions, nil, ttl),
	}
}

// With runs fn against the caller's reconciler while holding its lock. A
// user who switched clubs gets a fresh reconciler.
func (r *Registry) With(s domain.Session, fn func(*Reconciler) error) error {
	sess := r.acquire(s)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.rec)
}

// Reset forgets the user's POS session.
func (r *Registry) Reset(userID string) {
	r.sessions.Remove(userID)
}

func (r *Registry) Len() int { return r.sessions.Len() }

func (r *Registry) acquire(s domain.Session) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions.Get(s.UserID)
	if !ok || sess.clubID != s.ClubID {
		sess = &session{clubID: s.ClubID, rec: NewReconciler()}
	}
	// Re-adding refreshes the expiry so only idle sessions age out.
	r.sessions.Add(s.UserID, sess)
	return sess
}
