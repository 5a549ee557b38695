package domain

import "time"

// SessionState defines the lifecycle phase of a user's session.
// Exactly one holds at any time for a given user.
type SessionState string

const (
	StateNoSession          SessionState = "NO_SESSION"
	StateSessionStarted     SessionState = "SESSION_STARTED"
	StateEmotionIdentified  SessionState = "EMOTION_IDENTIFIED"
	StateDiagnosticComplete SessionState = "DIAGNOSTIC_COMPLETE"
	StateRemedyProvided     SessionState = "REMEDY_PROVIDED"
	StateEmergency          SessionState = "EMERGENCY"
)

// States returns all session states in lifecycle order.
func States() []SessionState {
	return []SessionState{
		StateNoSession,
		StateSessionStarted,
		StateEmotionIdentified,
		StateDiagnosticComplete,
		StateRemedyProvided,
		StateEmergency,
	}
}

// HoldsEmotion reports whether a session in this state may carry a
// non-nil CurrentEmotion.
func (s SessionState) HoldsEmotion() bool {
	switch s {
	case StateEmotionIdentified, StateDiagnosticComplete, StateRemedyProvided:
		return true
	}
	return false
}

// Turn is one entry of the bounded conversation history. Append-only
// within a session; the oldest entries are evicted FIFO past the limit.
type Turn struct {
	Command   string       `json:"command"`
	Parameter string       `json:"parameter,omitempty"`
	Summary   string       `json:"summary"`
	State     SessionState `json:"state"`
	Timestamp time.Time    `json:"timestamp"`
}

// MoodEntry is one record of the secondary append-only mood log. It lives
// under its own store key, independent of the main session record.
type MoodEntry struct {
	Command   string    `json:"command"`
	Parameter string    `json:"parameter,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the durable per-user record. Owned exclusively by the session
// store; callers hold only a transient working copy per request.
type Session struct {
	UserID         string             `json:"user_id"`
	State          SessionState       `json:"state"`
	CurrentEmotion *NormalizedEmotion `json:"current_emotion,omitempty"`
	Context        map[string]any     `json:"context"`
	History        []Turn             `json:"history"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// NewSession creates a fresh NoSession record for a user. Absence of a
// persisted record is a valid state, not a fault, so stores hand this out
// instead of an error.
func NewSession(userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		UserID:    userID,
		State:     StateNoSession,
		Context:   make(map[string]any),
		History:   []Turn{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendTurn adds a turn to the history and trims to the most recent max
// entries, dropping the oldest first.
func (s *Session) AppendTurn(t Turn, max int) {
	s.History = append(s.History, t)
	if max > 0 && len(s.History) > max {
		s.History = s.History[len(s.History)-max:]
	}
}

// Clone returns a deep copy so stores can hand out isolated snapshots.
func (s *Session) Clone() *Session {
	c := *s
	c.Context = make(map[string]any, len(s.Context))
	for k, v := range s.Context {
		c.Context[k] = v
	}
	c.History = make([]Turn, len(s.History))
	copy(c.History, s.History)
	if s.CurrentEmotion != nil {
		e := *s.CurrentEmotion
		if s.CurrentEmotion.MatchedTerms != nil {
			e.MatchedTerms = append([]string(nil), s.CurrentEmotion.MatchedTerms...)
		}
		c.CurrentEmotion = &e
	}
	return &c
}
