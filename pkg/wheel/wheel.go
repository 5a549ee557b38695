/*
Package wheel implements the emotion taxonomy engine.

It maps free text onto a closed vocabulary: 8 primary emotions, one variant
label per intensity level (24 labels total), and 8 named blends covering the
adjacency cycle. Matching is a deterministic scored keyword/synonym lookup;
identical text always yields an identical NormalizedEmotion.
*/
package wheel

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"github.com/sereno-labs/sereno/pkg/domain"
	"gopkg.in/yaml.v3"
)

// LowConfidenceThreshold is the advisory cutoff below which callers should
// steer users toward explicit taxonomy browsing instead of trusting the
// inferred emotion.
const LowConfidenceThreshold = 0.2

// variants holds the (intense, base, mild) labels for each primary.
type variants struct {
	Intense string
	Base    string
	Mild    string
}

var primaryVariants = map[domain.PrimaryEmotion]variants{
	domain.Joy:          {"ecstasy", "joy", "serenity"},
	domain.Trust:        {"admiration", "trust", "acceptance"},
	domain.Fear:         {"terror", "fear", "apprehension"},
	domain.Surprise:     {"amazement", "surprise", "distraction"},
	domain.Sadness:      {"grief", "sadness", "pensiveness"},
	domain.Disgust:      {"loathing", "disgust", "boredom"},
	domain.Anger:        {"rage", "anger", "annoyance"},
	domain.Anticipation: {"vigilance", "anticipation", "interest"},
}

// blendPair is an unordered pair of adjacent primaries, stored sorted by name.
type blendPair struct {
	left, right domain.PrimaryEmotion
}

func pairOf(a, b domain.PrimaryEmotion) blendPair {
	if a > b {
		a, b = b, a
	}
	return blendPair{a, b}
}

var blends = map[blendPair]string{
	pairOf(domain.Joy, domain.Trust):            "love",
	pairOf(domain.Trust, domain.Fear):           "submission",
	pairOf(domain.Fear, domain.Surprise):        "awe",
	pairOf(domain.Surprise, domain.Sadness):     "disapproval",
	pairOf(domain.Sadness, domain.Disgust):      "remorse",
	pairOf(domain.Disgust, domain.Anger):        "contempt",
	pairOf(domain.Anger, domain.Anticipation):   "aggressiveness",
	pairOf(domain.Anticipation, domain.Joy):     "optimism",
}

//go:embed synonyms.yaml
var synonymsYAML []byte

// synonyms maps free-text words to canonical variant labels.
var synonyms = mustLoadSynonyms()

func mustLoadSynonyms() map[string][]string {
	out := make(map[string][]string)
	if err := yaml.Unmarshal(synonymsYAML, &out); err != nil {
		panic(fmt.Sprintf("wheel: invalid synonyms table: %v", err))
	}
	return out
}

// variantLookup maps a variant label to its primary and intensity.
type variantInfo struct {
	primary   domain.PrimaryEmotion
	intensity domain.Intensity
}

var variantLookup = buildVariantLookup()

func buildVariantLookup() map[string]variantInfo {
	out := make(map[string]variantInfo, len(primaryVariants)*3)
	for _, p := range domain.Primaries() {
		v := primaryVariants[p]
		out[v.Intense] = variantInfo{p, domain.IntensityIntense}
		out[v.Base] = variantInfo{p, domain.IntensityBase}
		out[v.Mild] = variantInfo{p, domain.IntensityMild}
	}
	return out
}

// tokenize lowercases the input and splits on any non-alphanumeric rune,
// preserving first-appearance order and dropping duplicates.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Token weights: a direct variant label is the strongest signal, a primary
// name or a synonym counts slightly less.
const (
	scoreVariant = 3
	scorePrimary = 2
	scoreSynonym = 2
)

// ClosestPrimary scores each primary emotion by matched tokens and returns
// the best one, its confidence in [0,1], and the matched terms in input
// order. Ties resolve to the earlier primary in declaration order.
func ClosestPrimary(text string) (domain.PrimaryEmotion, float64, []string) {
	tokens := tokenize(text)

	scores := make(map[domain.PrimaryEmotion]int)
	matched := make(map[domain.PrimaryEmotion][]string)

	for _, tok := range tokens {
		for _, p := range domain.Primaries() {
			if tok == strings.ToLower(string(p)) {
				scores[p] += scorePrimary
				matched[p] = append(matched[p], tok)
			}
		}
		if info, ok := variantLookup[tok]; ok {
			scores[info.primary] += scoreVariant
			matched[info.primary] = append(matched[info.primary], tok)
		}
		if vars, ok := synonyms[tok]; ok {
			for _, v := range vars {
				if info, ok := variantLookup[v]; ok {
					scores[info.primary] += scoreSynonym
					matched[info.primary] = append(matched[info.primary], tok)
				}
			}
		}
	}

	best := domain.Primaries()[0]
	total := 0
	for _, p := range domain.Primaries() {
		total += scores[p]
		if scores[p] > scores[best] {
			best = p
		}
	}
	if scores[best] == 0 {
		return best, 0, nil
	}
	return best, float64(scores[best]) / float64(total), matched[best]
}

// tokensToPrimaries resolves every token to the primaries it can refer to.
func tokensToPrimaries(tokens []string) map[domain.PrimaryEmotion]struct{} {
	out := make(map[domain.PrimaryEmotion]struct{})
	for _, tok := range tokens {
		for _, p := range domain.Primaries() {
			if tok == strings.ToLower(string(p)) {
				out[p] = struct{}{}
			}
		}
		if info, ok := variantLookup[tok]; ok {
			out[info.primary] = struct{}{}
		}
		if vars, ok := synonyms[tok]; ok {
			for _, v := range vars {
				if info, ok := variantLookup[v]; ok {
					out[info.primary] = struct{}{}
				}
			}
		}
	}
	return out
}

// DetectBlend reports the blend name when the tokens map onto a known
// adjacent pair of primaries. Pairs are checked in name order, so the
// result does not depend on token order in the input.
func DetectBlend(text string) (string, bool) {
	primaries := tokensToPrimaries(tokenize(text))
	if len(primaries) < 2 {
		return "", false
	}
	list := make([]domain.PrimaryEmotion, 0, len(primaries))
	for p := range primaries {
		list = append(list, p)
	}
	slices.Sort(list)
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			if name, ok := blends[pairOf(list[i], list[j])]; ok {
				return name, true
			}
		}
	}
	return "", false
}

// Normalize maps free text to a NormalizedEmotion. Deterministic and
// side-effect free.
func Normalize(text string) domain.NormalizedEmotion {
	tokens := tokenize(text)
	primary, conf, matchedTerms := ClosestPrimary(text)

	v := primaryVariants[primary]
	var label string
	var intensity domain.Intensity

	// Priority: direct variant token, then synonym, then the base label when
	// the primary name itself was mentioned.
	inTokens := func(s string) bool {
		for _, t := range tokens {
			if t == s {
				return true
			}
		}
		return false
	}
	switch {
	case inTokens(v.Intense):
		label, intensity = v.Intense, domain.IntensityIntense
	case inTokens(v.Base):
		label, intensity = v.Base, domain.IntensityBase
	case inTokens(v.Mild):
		label, intensity = v.Mild, domain.IntensityMild
	}
	if label == "" {
	outer:
		for _, tok := range tokens {
			vars, ok := synonyms[tok]
			if !ok {
				continue
			}
			for _, candidate := range vars {
				switch candidate {
				case v.Intense:
					label, intensity = v.Intense, domain.IntensityIntense
				case v.Base:
					label, intensity = v.Base, domain.IntensityBase
				case v.Mild:
					label, intensity = v.Mild, domain.IntensityMild
				default:
					continue
				}
				break outer
			}
		}
	}
	if label == "" && inTokens(strings.ToLower(string(primary))) {
		label, intensity = v.Base, domain.IntensityBase
	}

	blendName, isBlend := DetectBlend(text)

	return domain.NormalizedEmotion{
		Primary:      primary,
		VariantLabel: label,
		Intensity:    intensity,
		IsBlend:      isBlend,
		BlendName:    blendName,
		Confidence:   conf,
		MatchedTerms: matchedTerms,
	}
}

// Levels selectable for RenderText.
const (
	LevelPrimary  = "primary"
	LevelVariants = "variants"
	LevelBlends   = "blends"
)

// RenderText produces a static human-readable listing of the taxonomy.
// Pure formatting, no matching logic. With no levels given it renders all.
func RenderText(levels ...string) string {
	if len(levels) == 0 {
		levels = []string{LevelPrimary, LevelVariants, LevelBlends}
	}
	want := make(map[string]bool, len(levels))
	for _, l := range levels {
		want[l] = true
	}

	var b strings.Builder
	if want[LevelPrimary] {
		b.WriteString("# Primary Emotions\n")
		for _, p := range domain.Primaries() {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}
	if want[LevelVariants] {
		b.WriteString("# Variants by Intensity (INTENSE, BASE, MILD)\n")
		for _, p := range domain.Primaries() {
			v := primaryVariants[p]
			fmt.Fprintf(&b, "- %s: %s, %s, %s\n", p, v.Intense, v.Base, v.Mild)
		}
		b.WriteString("\n")
	}
	if want[LevelBlends] {
		b.WriteString("# Secondary Blends\n")
		for _, p := range adjacencyCycle() {
			name := blends[pairOf(p[0], p[1])]
			fmt.Fprintf(&b, "- %s + %s -> %s\n", p[0], p[1], name)
		}
	}
	return strings.TrimSpace(b.String())
}

// adjacencyCycle lists blend pairs in wheel order for stable rendering.
func adjacencyCycle() [][2]domain.PrimaryEmotion {
	return [][2]domain.PrimaryEmotion{
		{domain.Joy, domain.Trust},
		{domain.Trust, domain.Fear},
		{domain.Fear, domain.Surprise},
		{domain.Surprise, domain.Sadness},
		{domain.Sadness, domain.Disgust},
		{domain.Disgust, domain.Anger},
		{domain.Anger, domain.Anticipation},
		{domain.Anticipation, domain.Joy},
	}
}
