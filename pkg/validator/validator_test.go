package validator

import (
	"slices"
	"testing"

	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmergencyValidFromEveryState(t *testing.T) {
	for _, state := range domain.States() {
		t.Run(string(state), func(t *testing.T) {
			res := Validate(state, domain.CmdSOS, "", nil)
			require.True(t, res.Valid)
			assert.Equal(t, domain.StateEmergency, res.NextState)
			assert.Equal(t, domain.CategoryEmergency, res.Category)
		})
	}
}

func TestExitValidFromEveryState(t *testing.T) {
	for _, state := range domain.States() {
		res := Validate(state, domain.CmdExit, "", nil)
		require.True(t, res.Valid, "exit from %s", state)
		assert.Equal(t, domain.StateNoSession, res.NextState)
	}
}

func TestUnknownCommand(t *testing.T) {
	res := Validate(domain.StateSessionStarted, "dance", "", nil)
	assert.False(t, res.Valid)
	assert.Equal(t, domain.CategoryUnknown, res.Category)
	assert.Contains(t, res.ErrorMessage, "Unknown command")
	assert.NotEmpty(t, res.Suggested)
}

func TestOutOfSequenceSuggestsLegalCommands(t *testing.T) {
	// Diagnostics before an emotion is identified must be rejected with
	// guidance toward identification.
	res := Validate(domain.StateSessionStarted, domain.CmdWhy, "", nil)

	require.False(t, res.Valid)
	assert.Contains(t, res.ErrorMessage, "not allowed")
	assert.Contains(t, res.Suggested, "/feel")
	assert.Contains(t, res.Suggested, "/wheel")
}

func TestFeelRequiresParameter(t *testing.T) {
	res := Validate(domain.StateSessionStarted, domain.CmdFeel, "   ", nil)

	require.False(t, res.Valid)
	assert.Contains(t, res.ErrorMessage, "requires a parameter")
	// The rejection consumes no transition.
	assert.Equal(t, domain.StateSessionStarted, res.CurrentState)
}

func TestFeelNormalizesEmotion(t *testing.T) {
	res := Validate(domain.StateSessionStarted, domain.CmdFeel, "anxious", nil)

	require.True(t, res.Valid)
	assert.Equal(t, domain.StateEmotionIdentified, res.NextState)
	require.NotNil(t, res.Emotion)
	assert.Equal(t, domain.Fear, res.Emotion.Primary)
	assert.Equal(t, "apprehension", res.Emotion.VariantLabel)
}

func TestTransitions(t *testing.T) {
	cases := []struct {
		state domain.SessionState
		cmd   string
		next  domain.SessionState
	}{
		{domain.StateNoSession, domain.CmdStart, domain.StateSessionStarted},
		{domain.StateNoSession, domain.CmdCheckin, domain.StateSessionStarted},
		{domain.StateEmotionIdentified, domain.CmdWhy, domain.StateDiagnosticComplete},
		// Re-running the diagnostic does not move the state.
		{domain.StateDiagnosticComplete, domain.CmdWhy, domain.StateDiagnosticComplete},
		{domain.StateEmotionIdentified, domain.CmdRemedy, domain.StateRemedyProvided},
		{domain.StateDiagnosticComplete, domain.CmdRemedy, domain.StateRemedyProvided},
		// A free-form ask after a remedy opens a new cycle.
		{domain.StateRemedyProvided, domain.CmdAsk, domain.StateSessionStarted},
		{domain.StateSessionStarted, domain.CmdAsk, domain.StateSessionStarted},
		{domain.StateRemedyProvided, domain.CmdFeel, domain.StateEmotionIdentified},
		{domain.StateEmotionIdentified, domain.CmdBreathe, domain.StateEmotionIdentified},
	}
	for _, tc := range cases {
		t.Run(string(tc.state)+"/"+tc.cmd, func(t *testing.T) {
			res := Validate(tc.state, tc.cmd, "anxious", nil)
			require.True(t, res.Valid)
			assert.Equal(t, tc.next, res.NextState)
		})
	}
}

func TestValidateMatchesAvailableCommands(t *testing.T) {
	// Validate and AvailableCommands must agree for every state/command pair.
	for _, state := range domain.States() {
		available := AvailableCommands(state)
		for _, cmd := range domain.Commands() {
			res := Validate(state, cmd, "anxious", nil)
			expected := slices.Contains(available, cmd)
			assert.Equal(t, expected, res.Valid, "state=%s cmd=%s", state, cmd)
		}
	}
}

func TestValidateIsPure(t *testing.T) {
	context := map[string]any{"topic": "work"}

	first := Validate(domain.StateEmotionIdentified, domain.CmdWhy, "", context)
	second := Validate(domain.StateEmotionIdentified, domain.CmdWhy, "", context)

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]any{"topic": "work"}, context, "context must not be written")
}

func TestValidateRaw(t *testing.T) {
	res := ValidateRaw("/feel anxious", domain.StateSessionStarted, nil)
	require.True(t, res.Valid)
	require.NotNil(t, res.Emotion)

	// Free text without a directive is an implicit ask.
	res = ValidateRaw("I had a rough day", domain.StateSessionStarted, nil)
	require.True(t, res.Valid)
	assert.Equal(t, domain.CategoryEmotionIdentification, res.Category)
}

func TestAvailableCommandsPerState(t *testing.T) {
	noSession := AvailableCommands(domain.StateNoSession)
	assert.ElementsMatch(t, []string{
		domain.CmdStart, domain.CmdCheckin, domain.CmdSOS, domain.CmdExit, domain.CmdStatus,
	}, noSession)

	emergency := AvailableCommands(domain.StateEmergency)
	assert.Contains(t, emergency, domain.CmdBreathe)
	assert.Contains(t, emergency, domain.CmdExit)
	assert.NotContains(t, emergency, domain.CmdFeel)
	assert.NotContains(t, emergency, domain.CmdWhy)
}
