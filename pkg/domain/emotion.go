package domain

import "strings"

// PrimaryEmotion is one of the 8 root categories of the taxonomy.
// The set is closed and never extended at runtime.
type PrimaryEmotion string

const (
	Joy          PrimaryEmotion = "JOY"
	Trust        PrimaryEmotion = "TRUST"
	Fear         PrimaryEmotion = "FEAR"
	Surprise     PrimaryEmotion = "SURPRISE"
	Sadness      PrimaryEmotion = "SADNESS"
	Disgust      PrimaryEmotion = "DISGUST"
	Anger        PrimaryEmotion = "ANGER"
	Anticipation PrimaryEmotion = "ANTICIPATION"
)

// Primaries returns the 8 primary emotions in declaration order.
// This order is the tie-breaker for scoring, so it must stay stable.
func Primaries() []PrimaryEmotion {
	return []PrimaryEmotion{Joy, Trust, Fear, Surprise, Sadness, Disgust, Anger, Anticipation}
}

// Intensity is the severity level of an emotion variant.
type Intensity string

const (
	IntensityMild    Intensity = "MILD"
	IntensityBase    Intensity = "BASE"
	IntensityIntense Intensity = "INTENSE"
)

// NormalizedEmotion is the immutable result of mapping free text onto the
// taxonomy. Produced by the wheel package; never mutated after creation.
type NormalizedEmotion struct {
	Primary      PrimaryEmotion `json:"primary" mapstructure:"primary"`
	VariantLabel string         `json:"variant_label,omitempty" mapstructure:"variant_label"`
	Intensity    Intensity      `json:"intensity,omitempty" mapstructure:"intensity"`
	IsBlend      bool           `json:"is_blend" mapstructure:"is_blend"`
	BlendName    string         `json:"blend_name,omitempty" mapstructure:"blend_name"`
	Confidence   float64        `json:"confidence" mapstructure:"confidence"`
	MatchedTerms []string       `json:"matched_terms,omitempty" mapstructure:"matched_terms"`
}

// DisplayLabel renders a human-readable label like "apprehension [mild]" or
// "joy (blend: love)".
func (n NormalizedEmotion) DisplayLabel() string {
	label := n.VariantLabel
	if label == "" {
		label = string(n.Primary)
	}
	if n.Intensity != "" {
		label += " [" + strings.ToLower(string(n.Intensity)) + "]"
	}
	if n.IsBlend && n.BlendName != "" {
		label += " (blend: " + n.BlendName + ")"
	}
	return label
}
