// Package memory implements ports.SessionStore in memory.
// Used by tests and the interactive chat command; safe for concurrent use.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sereno-labs/sereno/pkg/domain"
)

const moodHistoryCap = 50

type record struct {
	session *domain.Session
	expires time.Time
}

// Store implements ports.SessionStore backed by maps.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]record
	moods    map[string][]domain.MoodEntry
	ttl      time.Duration
	now      func() time.Time
}

type Option func(*Store)

// WithTTL enables lazy expiry of session records.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// NewStore creates an in-memory store. Without WithTTL records never expire.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]record),
		moods:    make(map[string][]domain.MoodEntry),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a deep copy of the user's session, or a fresh NoSession
// record when absent or expired.
func (s *Store) Get(ctx context.Context, userID string) (*domain.Session, error) {
	s.mu.RLock()
	rec, ok := s.sessions[userID]
	s.mu.RUnlock()

	if !ok || (s.ttl > 0 && s.now().After(rec.expires)) {
		return domain.NewSession(userID), nil
	}
	return rec.session.Clone(), nil
}

// Save stores a deep copy and refreshes the expiry.
func (s *Store) Save(ctx context.Context, sess *domain.Session) error {
	sess.UpdatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = record{
		session: sess.Clone(),
		expires: s.now().Add(s.ttl),
	}
	return nil
}

// Delete removes the session record. The mood log is kept.
func (s *Store) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

// AppendMood appends one entry to the user's mood log.
func (s *Store) AppendMood(ctx context.Context, userID string, entry domain.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moods[userID] = append(s.moods[userID], entry)
	return nil
}

// MoodHistory returns up to limit most recent entries, most-recent-last.
func (s *Store) MoodHistory(ctx context.Context, userID string, limit int) ([]domain.MoodEntry, error) {
	if limit <= 0 || limit > moodHistoryCap {
		limit = moodHistoryCap
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	log := s.moods[userID]
	if len(log) > limit {
		log = log[len(log)-limit:]
	}
	out := make([]domain.MoodEntry, len(log))
	copy(out, log)
	return out, nil
}
