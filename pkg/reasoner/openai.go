package reasoner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/sereno-labs/sereno/pkg/ports"
)

// ClientConfig configures the OpenAI-compatible chat endpoint.
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// Client is the network-backed reasoning provider. It speaks the
// OpenAI-compatible chat completions protocol for open conversation and
// delegates the deterministic capabilities (analysis, questions, remedies)
// to the local stub, mirroring how those stay taxonomy-driven regardless of
// provider. Single attempt per call; the Fallback wrapper handles errors.
type Client struct {
	*Stub
	cfg ClientConfig
}

// NewClient builds the network-backed provider.
func NewClient(cfg ClientConfig) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &Client{Stub: NewStub(), cfg: cfg}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Converse sends the trailing conversation window to the chat endpoint.
func (c *Client) Converse(ctx context.Context, input string, cc ports.ConversationContext) (string, error) {
	messages := []chatMessage{{Role: "system", Content: systemPrompt(cc)}}
	for _, turn := range tail(cc.RecentTurns, 5) {
		if turn.Parameter != "" {
			messages = append(messages, chatMessage{Role: "user", Content: "User said: " + turn.Parameter})
		}
		if turn.Summary != "" {
			messages = append(messages, chatMessage{Role: "assistant", Content: "System responded: " + turn.Summary})
		}
	}
	messages = append(messages, chatMessage{Role: "user", Content: "User said: " + input})

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrBackendUnavailable, resp.StatusCode, payload)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrBackendUnavailable, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrBackendUnavailable)
	}
	return parsed.Choices[0].Message.Content, nil
}

func systemPrompt(cc ports.ConversationContext) string {
	emotion := "unknown"
	if cc.CurrentEmotion != nil {
		emotion = string(cc.CurrentEmotion.Primary)
	}
	goal := cc.Goal
	if goal == "" {
		goal = "support"
	}
	return fmt.Sprintf(
		"You are a compassionate emotional support assistant. State: %s. Emotion: %s. Goal: %s. "+
			"Respond with clear attribution (User said / System responded).",
		cc.State, emotion, goal,
	)
}
