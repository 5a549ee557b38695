// Package redis implements ports.SessionStore on a Redis backend.
//
// Sessions are stored as JSON under a prefixed per-user key with a TTL that
// every Save refreshes. The mood log is a separate per-user list key so its
// retention is independent of the session record.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/sereno-labs/sereno/pkg/domain"
)

// DefaultTTL bounds how long an unrefreshed session survives (3 days).
const DefaultTTL = 72 * time.Hour

// moodHistoryCap is the hard ceiling on entries returned by MoodHistory.
const moodHistoryCap = 50

// Store implements ports.SessionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration refreshed on every save.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "sereno:",
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) sessionKey(userID string) string {
	return s.prefix + "session:" + userID
}

func (s *Store) moodKey(userID string) string {
	return s.prefix + "moodlog:" + userID
}

// Get returns the user's session, or a fresh NoSession record when the key
// is absent or expired.
func (s *Store) Get(ctx context.Context, userID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.sessionKey(userID)).Result()
	if err != nil {
		if err == backend.Nil {
			return domain.NewSession(userID), nil
		}
		return nil, fmt.Errorf("%w: redis get: %w", domain.ErrStoreUnavailable, err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		// A corrupt record is unrecoverable; start over rather than erroring.
		return domain.NewSession(userID), nil
	}
	if sess.Context == nil {
		sess.Context = make(map[string]any)
	}
	return &sess, nil
}

// Save writes the full record and refreshes the TTL.
func (s *Store) Save(ctx context.Context, sess *domain.Session) error {
	sess.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.sessionKey(sess.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes the session record immediately. The mood log is kept; its
// own TTL governs reclamation.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("%w: redis del: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// AppendMood pushes one entry onto the user's mood log and refreshes the
// log's TTL.
func (s *Store) AppendMood(ctx context.Context, userID string, entry domain.MoodEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal mood entry: %w", err)
	}

	key := s.moodKey(userID)
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: redis rpush: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// MoodHistory returns up to limit most recent entries, most-recent-last.
func (s *Store) MoodHistory(ctx context.Context, userID string, limit int) ([]domain.MoodEntry, error) {
	if limit <= 0 || limit > moodHistoryCap {
		limit = moodHistoryCap
	}

	items, err := s.client.LRange(ctx, s.moodKey(userID), int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: redis lrange: %w", domain.ErrStoreUnavailable, err)
	}

	out := make([]domain.MoodEntry, 0, len(items))
	for _, item := range items {
		var entry domain.MoodEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
