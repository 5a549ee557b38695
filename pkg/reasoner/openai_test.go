package reasoner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/sereno-labs/sereno/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeChatServer(t *testing.T, reply string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		})
	}))
}

func TestClientConverse(t *testing.T) {
	var captured chatRequest
	srv := fakeChatServer(t, "That sounds heavy. What part weighs most?", &captured)
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})
	cc := ports.ConversationContext{
		State:          domain.StateEmotionIdentified,
		CurrentEmotion: &domain.NormalizedEmotion{Primary: domain.Sadness},
		Goal:           "understanding_emotions",
		RecentTurns: []domain.Turn{
			{Command: domain.CmdFeel, Parameter: "sad", Summary: "emotion identified: sadness"},
		},
	}

	reply, err := client.Converse(context.Background(), "everything is heavy", cc)
	require.NoError(t, err)
	assert.Equal(t, "That sounds heavy. What part weighs most?", reply)

	assert.Equal(t, "test-model", captured.Model)
	require.NotEmpty(t, captured.Messages)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "SADNESS")
	assert.Contains(t, captured.Messages[0].Content, "understanding_emotions")
	last := captured.Messages[len(captured.Messages)-1]
	assert.Equal(t, "user", last.Role)
	assert.Contains(t, last.Content, "everything is heavy")
}

func TestClientConverseWindowsHistory(t *testing.T) {
	var captured chatRequest
	srv := fakeChatServer(t, "ok", &captured)
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL})
	turns := make([]domain.Turn, 8)
	for i := range turns {
		turns[i] = domain.Turn{Parameter: "p", Summary: "s"}
	}

	_, err := client.Converse(context.Background(), "hello", ports.ConversationContext{RecentTurns: turns})
	require.NoError(t, err)

	// system + 5 windowed turns (user+assistant each) + final user message.
	assert.Len(t, captured.Messages, 1+5*2+1)
}

func TestClientConverseServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL})

	_, err := client.Converse(context.Background(), "hello", ports.ConversationContext{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestClientConverseUnreachable(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1"})

	_, err := client.Converse(context.Background(), "hello", ports.ConversationContext{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestClientDelegatesDeterministicCapabilities(t *testing.T) {
	// Analysis, questions and remedies stay taxonomy-driven regardless of
	// the provider.
	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1"})

	analysis, err := client.Analyze(context.Background(), "anxious", ports.ConversationContext{})
	require.NoError(t, err)
	assert.Equal(t, domain.Fear, analysis.Emotion)

	qs, err := client.ProbeQuestions(context.Background(), domain.Fear, ports.ConversationContext{})
	require.NoError(t, err)
	assert.NotEmpty(t, qs)
}
