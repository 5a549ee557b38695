package conversation

import (
	"fmt"
	"strings"

	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/sereno-labs/sereno/pkg/ports"
)

// Response type tags carried on every structured result.
const (
	TypeSessionStart    = "session_start"
	TypeEmotion         = "emotion_identification"
	TypeConversation    = "conversation"
	TypeWheel           = "emotion_wheel"
	TypeDiagnostic      = "diagnostic_questions"
	TypeRemedies        = "coping_strategies"
	TypeBreathing       = "breathing_exercise"
	TypeQuote           = "quote"
	TypeJournal         = "journal_prompt"
	TypeAudio           = "audio_grounding"
	TypeCheckin         = "checkin"
	TypeMoodHistory     = "mood_history"
	TypeEmergency       = "emergency"
	TypeSessionEnd      = "session_end"
	TypeStatus          = "status"
	TypeCrisis          = "crisis"
	TypeRedirect        = "redirect"
)

// Attachment marks a secondary media payload carried alongside the
// structured response (e.g. the wheel image on taxonomy browsing).
type Attachment struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// Response is the structured result of one accepted command.
type Response struct {
	Type              string                    `json:"type"`
	Message           string                    `json:"message"`
	Instructions      string                    `json:"instructions,omitempty"`
	State             domain.SessionState       `json:"state,omitempty"`
	Emotion           *domain.NormalizedEmotion `json:"emotion,omitempty"`
	Analysis          *ports.Analysis           `json:"analysis,omitempty"`
	Questions         []string                  `json:"questions,omitempty"`
	Remedies          []string                  `json:"remedies,omitempty"`
	Content           string                    `json:"content,omitempty"`
	MoodHistory       []domain.MoodEntry        `json:"mood_history,omitempty"`
	Resources         map[string]string         `json:"resources,omitempty"`
	Attachment        *Attachment               `json:"attachment,omitempty"`
	AvailableCommands []string                  `json:"available_commands,omitempty"`
}

func startResponse(available []string) *Response {
	return &Response{
		Type:              TypeSessionStart,
		Message:           "Session started. How are you feeling today?",
		Instructions:      "Try: /feel <emotion> (e.g. 'anger', 'joy') or /wheel for guidance.",
		AvailableCommands: available,
	}
}

func feelResponse(norm *domain.NormalizedEmotion, available []string) *Response {
	return &Response{
		Type:              TypeEmotion,
		Message:           "Emotion identified: " + norm.DisplayLabel(),
		Emotion:           norm,
		Instructions:      "Use /why to explore or /remedy for coping strategies.",
		AvailableCommands: available,
	}
}

func askResponse(input, reply string, analysis ports.Analysis, available []string) *Response {
	return &Response{
		Type:              TypeConversation,
		Message:           reply,
		Instructions:      fmt.Sprintf("User said: %s", input),
		Analysis:          &analysis,
		AvailableCommands: available,
	}
}

func wheelResponse(content string, available []string) *Response {
	return &Response{
		Type:         TypeWheel,
		Message:      "Emotion wheel reference provided.",
		Instructions: "Use /feel <term> from this guide to set your emotion.",
		Content:      content,
		Attachment: &Attachment{
			Kind:        "image",
			Description: "Visual representation of the wheel of emotions",
		},
		AvailableCommands: available,
	}
}

func whyResponse(emotion domain.PrimaryEmotion, qs []string, available []string) *Response {
	bullets := make([]string, len(qs))
	for i, q := range qs {
		bullets[i] = "- " + q
	}
	return &Response{
		Type:              TypeDiagnostic,
		Message:           fmt.Sprintf("Let me ask you some questions to understand %s better:\n%s", strings.ToLower(string(emotion)), strings.Join(bullets, "\n")),
		Questions:         qs,
		AvailableCommands: available,
	}
}

func remedyResponse(emotion domain.PrimaryEmotion, rems []string, available []string) *Response {
	bullets := make([]string, len(rems))
	for i, r := range rems {
		bullets[i] = "- " + r
	}
	return &Response{
		Type:              TypeRemedies,
		Message:           fmt.Sprintf("Here are some strategies for %s:\n%s", strings.ToLower(string(emotion)), strings.Join(bullets, "\n")),
		Remedies:          rems,
		AvailableCommands: available,
	}
}

func breatheResponse(available []string) *Response {
	return &Response{
		Type:              TypeBreathing,
		Message:           "Box breathing: inhale 4, hold 4, exhale 4, hold 4. Repeat 4 cycles.",
		AvailableCommands: available,
	}
}

func quoteResponse(available []string) *Response {
	return &Response{
		Type:              TypeQuote,
		Message:           "\"You can't stop the waves, but you can learn to surf.\" - Jon Kabat-Zinn",
		AvailableCommands: available,
	}
}

func journalResponse(available []string) *Response {
	return &Response{
		Type:              TypeJournal,
		Message:           "Journal prompt: write three sentences about what today felt like, without judging any of it.",
		AvailableCommands: available,
	}
}

func audioResponse(available []string) *Response {
	return &Response{
		Type:              TypeAudio,
		Message:           "Try a 5-minute grounding track: slow breaths, notice 5 things you can hear.",
		AvailableCommands: available,
	}
}

func checkinResponse(available []string) *Response {
	return &Response{
		Type:              TypeCheckin,
		Message:           "Checked in. How has your mood been since last time?",
		Instructions:      "Use /feel <emotion> to log how you're doing, or /moodlog to review.",
		AvailableCommands: available,
	}
}

func moodHistoryResponse(entries []domain.MoodEntry, available []string) *Response {
	return &Response{
		Type:              TypeMoodHistory,
		Message:           fmt.Sprintf("Mood log: %d recent entries.", len(entries)),
		MoodHistory:       entries,
		AvailableCommands: available,
	}
}

func sosResponse(available []string) *Response {
	return &Response{
		Type:    TypeEmergency,
		Message: "Emergency protocol activated. If you are in immediate danger, contact local emergency services.",
		Resources: map[string]string{
			"us_crisis_line": "988",
			"text_option":    "Text 988",
		},
		Attachment: &Attachment{
			Kind:        "image",
			Description: "Crisis resources card",
		},
		AvailableCommands: available,
	}
}

func crisisResponse(available []string) *Response {
	resp := sosResponse(available)
	resp.Type = TypeCrisis
	resp.Message = CrisisMessage
	return resp
}

func redirectResponse(available []string) *Response {
	return &Response{
		Type:              TypeRedirect,
		Message:           RedirectMessage,
		AvailableCommands: available,
	}
}

func exitResponse() *Response {
	return &Response{
		Type:    TypeSessionEnd,
		Message: "Session ended. Your data has been cleared. Come back any time.",
	}
}

func statusResponse(state domain.SessionState, available []string) *Response {
	return &Response{
		Type:              TypeStatus,
		Message:           fmt.Sprintf("Session status: %s", state),
		State:             state,
		AvailableCommands: available,
	}
}
