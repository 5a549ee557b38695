package ports

import (
	"context"

	"github.com/sereno-labs/sereno/pkg/domain"
)

// SessionStore persists per-user session records with a TTL, plus a
// secondary append-only mood log keyed independently of the session record.
type SessionStore interface {
	// Get returns the user's session. Absence or expiry is not an error: a
	// fresh NoSession record is returned instead.
	Get(ctx context.Context, userID string) (*domain.Session, error)

	// Save writes the full record and refreshes its TTL.
	Save(ctx context.Context, session *domain.Session) error

	// Delete removes the record immediately.
	Delete(ctx context.Context, userID string) error

	// AppendMood appends one entry to the user's mood log.
	AppendMood(ctx context.Context, userID string, entry domain.MoodEntry) error

	// MoodHistory returns up to limit most recent entries, oldest first
	// (most-recent-last).
	MoodHistory(ctx context.Context, userID string, limit int) ([]domain.MoodEntry, error)
}
