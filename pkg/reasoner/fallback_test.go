package reasoner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/sereno-labs/sereno/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// erroringReasoner fails every call.
type erroringReasoner struct{}

func (erroringReasoner) Analyze(ctx context.Context, text string, cc ports.ConversationContext) (ports.Analysis, error) {
	return ports.Analysis{}, errors.New("boom")
}

func (erroringReasoner) ProbeQuestions(ctx context.Context, emotion domain.PrimaryEmotion, cc ports.ConversationContext) ([]string, error) {
	return nil, errors.New("boom")
}

func (erroringReasoner) SuggestRemedies(ctx context.Context, emotion domain.PrimaryEmotion, cc ports.ConversationContext) ([]string, error) {
	return nil, errors.New("boom")
}

func (erroringReasoner) Converse(ctx context.Context, input string, cc ports.ConversationContext) (string, error) {
	return "", errors.New("boom")
}

// slowReasoner blocks until its context is cancelled.
type slowReasoner struct{}

func (slowReasoner) wait(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (s slowReasoner) Analyze(ctx context.Context, text string, cc ports.ConversationContext) (ports.Analysis, error) {
	return ports.Analysis{}, s.wait(ctx)
}

func (s slowReasoner) ProbeQuestions(ctx context.Context, emotion domain.PrimaryEmotion, cc ports.ConversationContext) ([]string, error) {
	return nil, s.wait(ctx)
}

func (s slowReasoner) SuggestRemedies(ctx context.Context, emotion domain.PrimaryEmotion, cc ports.ConversationContext) ([]string, error) {
	return nil, s.wait(ctx)
}

func (s slowReasoner) Converse(ctx context.Context, input string, cc ports.ConversationContext) (string, error) {
	return "", s.wait(ctx)
}

func TestFallbackAbsorbsErrors(t *testing.T) {
	fallbacks := 0
	f := NewFallback(erroringReasoner{}, WithFallbackHook(func() { fallbacks++ }))
	ctx := context.Background()

	analysis, err := f.Analyze(ctx, "anxious", ports.ConversationContext{})
	require.NoError(t, err)
	assert.Equal(t, domain.Fear, analysis.Emotion)

	qs, err := f.ProbeQuestions(ctx, domain.Fear, ports.ConversationContext{})
	require.NoError(t, err)
	assert.NotEmpty(t, qs)

	rems, err := f.SuggestRemedies(ctx, domain.Fear, ports.ConversationContext{})
	require.NoError(t, err)
	assert.NotEmpty(t, rems)

	reply, err := f.Converse(ctx, "anxious", ports.ConversationContext{})
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	assert.Equal(t, 4, fallbacks)
}

func TestFallbackTimesOutSlowBackend(t *testing.T) {
	f := NewFallback(slowReasoner{}, WithTimeout(50*time.Millisecond))

	start := time.Now()
	reply, err := f.Converse(context.Background(), "anxious", ports.ConversationContext{})
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
	assert.Less(t, time.Since(start), time.Second, "fallback must not wait for the slow backend")
}

func TestFallbackPassesThroughSuccess(t *testing.T) {
	f := NewFallback(NewStub())

	reply, err := f.Converse(context.Background(), "I am so sad today", ports.ConversationContext{})
	require.NoError(t, err)
	assert.Contains(t, reply, "sadness")
}
