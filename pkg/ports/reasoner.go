package ports

import (
	"context"

	"github.com/sereno-labs/sereno/pkg/domain"
)

// Analysis is the result of reasoning over a piece of free text.
type Analysis struct {
	Emotion      domain.PrimaryEmotion `json:"emotion"`
	VariantLabel string                `json:"variant_label,omitempty"`
	Intensity    domain.Intensity      `json:"intensity,omitempty"`
	IsBlend      bool                  `json:"is_blend,omitempty"`
	BlendName    string                `json:"blend_name,omitempty"`
	Confidence   float64               `json:"confidence"`
	Notes        string                `json:"notes,omitempty"`
	MatchedTerms []string              `json:"matched_terms,omitempty"`
}

// ConversationContext is the session-derived context handed to a reasoner.
type ConversationContext struct {
	UserID         string
	State          domain.SessionState
	CurrentEmotion *domain.NormalizedEmotion
	// Goal is the inferred phase goal (e.g. "emotion_identification").
	Goal string
	// RecentTurns holds the trailing conversation window, oldest first.
	RecentTurns []domain.Turn
}

// Reasoner is the pluggable reasoning backend. Two variants exist: the
// deterministic local stub and a network-backed provider that degrades to
// stub behavior on any error or timeout. Selection happens via
// configuration, not runtime type inspection.
type Reasoner interface {
	// Analyze classifies free text into the taxonomy with advisory notes.
	Analyze(ctx context.Context, text string, cc ConversationContext) (Analysis, error)

	// ProbeQuestions returns 2-3 diagnostic questions for an emotion.
	ProbeQuestions(ctx context.Context, emotion domain.PrimaryEmotion, cc ConversationContext) ([]string, error)

	// SuggestRemedies returns coping strategies for an emotion.
	SuggestRemedies(ctx context.Context, emotion domain.PrimaryEmotion, cc ConversationContext) ([]string, error)

	// Converse produces a reply to open conversation.
	Converse(ctx context.Context, input string, cc ConversationContext) (string, error)
}
