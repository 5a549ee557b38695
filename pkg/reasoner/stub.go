/*
Package reasoner provides the pluggable reasoning backends.

Two variants implement ports.Reasoner: a deterministic local Stub driven by
fixed per-emotion framings (Fear leans on safety and uncertainty, Anger on
boundaries and fairness, Sadness on loss and change), and an OpenAI-compatible
network Client. Fallback wraps any backend with a bounded timeout and
degrades to the stub on error, so backend trouble is absorbed rather than
surfaced to the caller.
*/
package reasoner

import (
	"context"
	"fmt"
	"strings"

	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/sereno-labs/sereno/pkg/ports"
	"github.com/sereno-labs/sereno/pkg/wheel"
)

// Stub is the deterministic, local reasoning backend. Pure: no network, no
// state; identical inputs yield identical outputs.
type Stub struct{}

// NewStub returns the deterministic backend.
func NewStub() *Stub {
	return &Stub{}
}

var tips = map[domain.PrimaryEmotion]string{
	domain.Fear:         "Consider grounding; acknowledge uncertainty.",
	domain.Anger:        "Notice boundaries and fairness concerns.",
	domain.Sadness:      "Reflect on loss or change.",
	domain.Joy:          "Savor positive moments and share gratitude.",
	domain.Trust:        "Lean into supportive relationships.",
	domain.Surprise:     "Orient to what's new or unexpected.",
	domain.Disgust:      "Identify aversive triggers and distance.",
	domain.Anticipation: "Plan small next steps; channel energy.",
}

// Analyze classifies text with the taxonomy engine and attaches an
// advisory note. Low confidence steers the user toward browsing the wheel.
func (s *Stub) Analyze(ctx context.Context, text string, cc ports.ConversationContext) (ports.Analysis, error) {
	norm := wheel.Normalize(text)

	note := tips[norm.Primary]
	if norm.Confidence < wheel.LowConfidenceThreshold {
		if note != "" {
			note += " "
		}
		note += "Confidence low; consider /wheel for guidance."
	}

	return ports.Analysis{
		Emotion:      norm.Primary,
		VariantLabel: norm.VariantLabel,
		Intensity:    norm.Intensity,
		IsBlend:      norm.IsBlend,
		BlendName:    norm.BlendName,
		Confidence:   norm.Confidence,
		Notes:        note,
		MatchedTerms: norm.MatchedTerms,
	}, nil
}

var questions = map[domain.PrimaryEmotion][]string{
	domain.Fear: {
		"What feels unsafe or uncertain right now?",
		"What supports could reduce the risk?",
		"What would help you feel 10% safer?",
	},
	domain.Anger: {
		"Which boundary or value feels crossed?",
		"What would fairness look like here?",
		"What response aligns with your values?",
	},
	domain.Sadness: {
		"What loss or change are you holding?",
		"What do you miss most?",
		"What gentle support would help today?",
	},
	domain.Joy: {
		"What moment brought this joy?",
		"How can you savor it longer?",
		"Who might you share gratitude with?",
	},
	domain.Trust: {
		"Who or what feels dependable now?",
		"How can you lean into support?",
	},
	domain.Surprise: {
		"What changed unexpectedly?",
		"What is within your control today?",
	},
	domain.Disgust: {
		"What feels aversive or misaligned?",
		"How can you create distance or safety?",
	},
	domain.Anticipation: {
		"What are you looking forward to?",
		"What's one small step to prepare?",
	},
}

// ProbeQuestions returns the fixed diagnostic questions for an emotion.
func (s *Stub) ProbeQuestions(ctx context.Context, emotion domain.PrimaryEmotion, cc ports.ConversationContext) ([]string, error) {
	if qs, ok := questions[emotion]; ok {
		return append([]string(nil), qs...), nil
	}
	return []string{"Tell me more about what you're feeling."}, nil
}

var remedies = map[domain.PrimaryEmotion][]string{
	domain.Fear:         {"Box breathing 4-4-4-4", "List top 3 supports"},
	domain.Anger:        {"Pause and name the boundary", "Write an unsent letter"},
	domain.Sadness:      {"Reach out to a friend", "Gentle walk or music"},
	domain.Joy:          {"Gratitude note", "Share a positive moment"},
	domain.Trust:        {"Ask for a small favor", "Affirm a reliable routine"},
	domain.Surprise:     {"Orient: 5 things you see", "Note what remains stable"},
	domain.Disgust:      {"Create distance from trigger", "Rinse/reset ritual"},
	domain.Anticipation: {"Plan next step", "Time-box prep (10 mins)"},
}

// SuggestRemedies returns coping strategies for an emotion. Recent turns
// mentioning work add a planning tip.
func (s *Stub) SuggestRemedies(ctx context.Context, emotion domain.PrimaryEmotion, cc ports.ConversationContext) ([]string, error) {
	base, ok := remedies[emotion]
	if !ok {
		base = []string{"Hydrate and short break"}
	}
	out := append([]string(nil), base...)

	for _, turn := range tail(cc.RecentTurns, 3) {
		if strings.Contains(strings.ToLower(turn.Parameter), "work") {
			out = append(out, "Write a 3-item work checklist")
			break
		}
	}
	return out, nil
}

// Converse analyzes the input and replies with a clear attribution line.
func (s *Stub) Converse(ctx context.Context, input string, cc ports.ConversationContext) (string, error) {
	analysis, err := s.Analyze(ctx, input, cc)
	if err != nil {
		return "", err
	}
	emotion := string(analysis.Emotion)
	if analysis.Confidence == 0 && cc.CurrentEmotion != nil {
		emotion = string(cc.CurrentEmotion.Primary)
	}
	return fmt.Sprintf("System detected: user is experiencing %s.", strings.ToLower(emotion)), nil
}

func tail(turns []domain.Turn, n int) []domain.Turn {
	if len(turns) > n {
		return turns[len(turns)-n:]
	}
	return turns
}
