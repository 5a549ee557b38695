package wheel

import (
	"strings"
	"testing"

	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSynonym(t *testing.T) {
	norm := Normalize("I feel anxious about work")

	assert.Equal(t, domain.Fear, norm.Primary)
	assert.Equal(t, "apprehension", norm.VariantLabel)
	assert.Equal(t, domain.IntensityMild, norm.Intensity)
	assert.False(t, norm.IsBlend)
	assert.Greater(t, norm.Confidence, 0.0)
	assert.Contains(t, norm.MatchedTerms, "anxious")
}

func TestNormalizeVariantLabels(t *testing.T) {
	cases := []struct {
		input     string
		primary   domain.PrimaryEmotion
		label     string
		intensity domain.Intensity
	}{
		{"terror", domain.Fear, "terror", domain.IntensityIntense},
		{"fear", domain.Fear, "fear", domain.IntensityBase},
		{"apprehension", domain.Fear, "apprehension", domain.IntensityMild},
		{"ecstatic", domain.Joy, "ecstasy", domain.IntensityIntense},
		{"rage", domain.Anger, "rage", domain.IntensityIntense},
		{"boredom", domain.Disgust, "boredom", domain.IntensityMild},
		{"pensiveness", domain.Sadness, "pensiveness", domain.IntensityMild},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			norm := Normalize(tc.input)
			assert.Equal(t, tc.primary, norm.Primary)
			assert.Equal(t, tc.label, norm.VariantLabel)
			assert.Equal(t, tc.intensity, norm.Intensity)
		})
	}
}

func TestNormalizePrimaryNameFallsBackToBaseLabel(t *testing.T) {
	norm := Normalize("so much anger today")

	assert.Equal(t, domain.Anger, norm.Primary)
	assert.Equal(t, "anger", norm.VariantLabel)
	assert.Equal(t, domain.IntensityBase, norm.Intensity)
}

func TestNormalizeNoMatch(t *testing.T) {
	norm := Normalize("qwerty zxcvb")

	assert.Equal(t, 0.0, norm.Confidence)
	assert.Empty(t, norm.VariantLabel)
	assert.Empty(t, norm.MatchedTerms)
	assert.False(t, norm.IsBlend)
}

func TestNormalizeDeterministic(t *testing.T) {
	const input = "worried and a little sad about everything"
	first := Normalize(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Normalize(input))
	}
}

func TestDetectBlend(t *testing.T) {
	cases := []struct {
		input string
		blend string
	}{
		{"joy and trust", "love"},
		{"trust and joy", "love"}, // token order must not matter
		{"fear and surprise", "awe"},
		{"anger and anticipation", "aggressiveness"},
		{"anticipation and joy", "optimism"},
		{"sadness and disgust", "remorse"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			name, ok := DetectBlend(tc.input)
			require.True(t, ok)
			assert.Equal(t, tc.blend, name)
		})
	}
}

func TestDetectBlendNonAdjacent(t *testing.T) {
	// Joy and Fear are not adjacent on the cycle.
	_, ok := DetectBlend("joy and fear")
	assert.False(t, ok)

	_, ok = DetectBlend("just joy")
	assert.False(t, ok)
}

func TestNormalizeBlendCarriesName(t *testing.T) {
	norm := Normalize("a mix of joy and trust")
	assert.True(t, norm.IsBlend)
	assert.Equal(t, "love", norm.BlendName)
	// Ties resolve to the earlier primary in declaration order.
	assert.Equal(t, domain.Joy, norm.Primary)
}

func TestClosestPrimaryConfidenceSplit(t *testing.T) {
	// Two competing primaries split the mass evenly.
	_, conf, _ := ClosestPrimary("joy and trust")
	assert.InDelta(t, 0.5, conf, 1e-9)

	// A single match takes the whole mass.
	_, conf, _ = ClosestPrimary("anxious")
	assert.InDelta(t, 1.0, conf, 1e-9)
}

func TestRenderText(t *testing.T) {
	full := RenderText()
	assert.Contains(t, full, "# Primary Emotions")
	assert.Contains(t, full, "# Variants by Intensity")
	assert.Contains(t, full, "# Secondary Blends")
	assert.Contains(t, full, "JOY + TRUST -> love")

	primariesOnly := RenderText(LevelPrimary)
	assert.Contains(t, primariesOnly, "# Primary Emotions")
	assert.NotContains(t, primariesOnly, "# Secondary Blends")
	for _, p := range domain.Primaries() {
		assert.True(t, strings.Contains(primariesOnly, string(p)))
	}
}
