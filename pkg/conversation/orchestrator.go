/*
Package conversation composes the taxonomy engine, command validator,
session store and reasoning backend into a per-command processing pipeline.

For each call: parse the raw input, load the session, validate the command
against the current state, invoke the reasoner where the category needs it,
then mutate and persist the session. Rejections never touch the session;
store failures fail the whole call; reasoner failures are absorbed by the
fallback wrapper.
*/
package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sereno-labs/sereno/internal/logging"
	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/sereno-labs/sereno/pkg/ports"
	"github.com/sereno-labs/sereno/pkg/session"
	"github.com/sereno-labs/sereno/pkg/validator"
	"github.com/sereno-labs/sereno/pkg/wheel"
)

// DefaultHistoryLimit bounds the session's conversation history.
const DefaultHistoryLimit = 10

// DefaultMoodLimit is the default page size for mood history queries.
const DefaultMoodLimit = 10

// contextKeyEmotion is the session context key holding the normalized
// emotion details of the current cycle.
const contextKeyEmotion = "emotion_details"

// Result wraps either a successful structured response or a rejection with
// guidance.
type Result struct {
	Rejected     bool      `json:"rejected"`
	Response     *Response `json:"response,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Suggested    []string  `json:"suggested_commands,omitempty"`
}

// Orchestrator processes one command end-to-end under session-scoped
// guarantees.
type Orchestrator struct {
	sessions     *session.Manager
	reasoner     ports.Reasoner
	logger       *slog.Logger
	historyLimit int
	moodLimit    int
	autoDiagnose bool
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithHistoryLimit bounds the per-session conversation history.
func WithHistoryLimit(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.historyLimit = n
		}
	}
}

// WithMoodLimit sets the default mood history page size.
func WithMoodLimit(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.moodLimit = n
		}
	}
}

// WithAutoDiagnose makes a successful feel command immediately run the
// diagnostic step.
func WithAutoDiagnose(enabled bool) Option {
	return func(o *Orchestrator) {
		o.autoDiagnose = enabled
	}
}

// New creates an Orchestrator over the given session manager and reasoner.
func New(sessions *session.Manager, r ports.Reasoner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		sessions:     sessions,
		reasoner:     r,
		logger:       logging.NewNop(),
		historyLimit: DefaultHistoryLimit,
		moodLimit:    DefaultMoodLimit,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Handle processes one raw command for a user.
//
// The error return is reserved for transient infrastructure failures
// (store unreachable); command rejections come back as a Result with
// Rejected set and the session untouched.
func (o *Orchestrator) Handle(ctx context.Context, userID, raw string) (*Result, error) {
	cmd, param := domain.ParseCommand(raw)

	// Safety screens run before anything else. Crisis text takes the
	// emergency path no matter what was typed; out-of-scope content is
	// redirected without consuming a transition.
	crisis := IsCrisis(raw)
	if !crisis && IsInappropriate(raw) {
		return &Result{Response: redirectResponse(nil)}, nil
	}
	if crisis {
		cmd, param = domain.CmdSOS, ""
	}

	var result *Result
	err := o.sessions.WithLock(ctx, userID, func(ctx context.Context) error {
		store := o.sessions.Store()

		sess, err := store.Get(ctx, userID)
		if err != nil {
			return err
		}

		v := validator.Validate(sess.State, cmd, param, sess.Context)
		if !v.Valid {
			result = &Result{
				Rejected:     true,
				ErrorMessage: v.ErrorMessage,
				Suggested:    v.Suggested,
			}
			return nil
		}

		// Status is a pure query; it reports without mutating the session.
		if cmd == domain.CmdStatus {
			result = &Result{Response: statusResponse(sess.State, validator.AvailableCommands(sess.State))}
			return nil
		}

		resp, summary, err := o.execute(ctx, sess, cmd, param, v)
		if err != nil {
			return err
		}
		if crisis {
			resp = crisisResponse(resp.AvailableCommands)
			summary = "crisis protocol"
		}

		if cmd == domain.CmdExit {
			if err := store.Delete(ctx, userID); err != nil {
				return err
			}
		} else {
			o.applyTransition(sess, v, cmd, param, summary)
			if err := store.Save(ctx, sess); err != nil {
				return err
			}
		}

		if err := store.AppendMood(ctx, userID, domain.MoodEntry{
			Command:   cmd,
			Parameter: param,
			Summary:   summary,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			// The mood log is best-effort; the main record already landed.
			o.logger.Warn("append mood log failed", "user_id", userID, "err", err)
		}

		result = &Result{Response: resp}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("handle %q for user %s: %w", cmd, userID, err)
	}
	return result, nil
}

// applyTransition mutates the working copy after a successful command:
// state, current emotion, bounded history, timestamps.
func (o *Orchestrator) applyTransition(sess *domain.Session, v validator.Result, cmd, param, summary string) {
	next := v.NextState
	if o.autoDiagnose && cmd == domain.CmdFeel {
		next = domain.StateDiagnosticComplete
	}

	sess.State = next
	if v.Emotion != nil {
		sess.CurrentEmotion = v.Emotion
		sess.Context[contextKeyEmotion] = emotionToMap(v.Emotion)
	}
	// CurrentEmotion may only be carried in the identified/diagnosed/
	// remedied phases.
	if !next.HoldsEmotion() {
		sess.CurrentEmotion = nil
		delete(sess.Context, contextKeyEmotion)
	}

	sess.AppendTurn(domain.Turn{
		Command:   cmd,
		Parameter: param,
		Summary:   summary,
		State:     next,
		Timestamp: time.Now().UTC(),
	}, o.historyLimit)
	sess.UpdatedAt = time.Now().UTC()
}

// execute builds the response for an accepted command, invoking the
// reasoner where the category requires it.
func (o *Orchestrator) execute(ctx context.Context, sess *domain.Session, cmd, param string, v validator.Result) (*Response, string, error) {
	available := validator.AvailableCommands(v.NextState)
	cc := o.conversationContext(sess)

	switch cmd {
	case domain.CmdStart:
		return startResponse(available), "session started", nil

	case domain.CmdCheckin:
		return checkinResponse(available), "checked in", nil

	case domain.CmdFeel:
		resp := feelResponse(v.Emotion, available)
		summary := "emotion identified: " + v.Emotion.DisplayLabel()
		if o.autoDiagnose {
			qs, err := o.reasoner.ProbeQuestions(ctx, v.Emotion.Primary, cc)
			if err != nil {
				return nil, "", err
			}
			resp.Questions = qs
			resp.Instructions = "Let's explore right away. Use /remedy when you're ready for coping strategies."
			resp.AvailableCommands = validator.AvailableCommands(domain.StateDiagnosticComplete)
		}
		return resp, summary, nil

	case domain.CmdAsk:
		reply, err := o.reasoner.Converse(ctx, param, cc)
		if err != nil {
			return nil, "", err
		}
		analysis, err := o.reasoner.Analyze(ctx, param, cc)
		if err != nil {
			return nil, "", err
		}
		return askResponse(param, reply, analysis, available), reply, nil

	case domain.CmdWheel:
		return wheelResponse(wheel.RenderText(), available), "wheel browsed", nil

	case domain.CmdWhy:
		emotion := o.currentPrimary(sess)
		qs, err := o.reasoner.ProbeQuestions(ctx, emotion, cc)
		if err != nil {
			return nil, "", err
		}
		return whyResponse(emotion, qs, available), "diagnostic questions", nil

	case domain.CmdRemedy:
		emotion := o.currentPrimary(sess)
		rems, err := o.reasoner.SuggestRemedies(ctx, emotion, cc)
		if err != nil {
			return nil, "", err
		}
		return remedyResponse(emotion, rems, available), "remedies suggested", nil

	case domain.CmdBreathe:
		return breatheResponse(available), "breathing exercise", nil
	case domain.CmdQuote:
		return quoteResponse(available), "quote shared", nil
	case domain.CmdJournal:
		return journalResponse(available), "journal prompt", nil
	case domain.CmdAudio:
		return audioResponse(available), "audio grounding", nil

	case domain.CmdMoodlog:
		entries, err := o.sessions.MoodHistory(ctx, sess.UserID, o.moodLimit)
		if err != nil {
			return nil, "", err
		}
		return moodHistoryResponse(entries, available), "mood history viewed", nil

	case domain.CmdSOS:
		return sosResponse(available), "emergency protocol", nil

	case domain.CmdExit:
		return exitResponse(), "session ended", nil
	}

	return nil, "", fmt.Errorf("unhandled command %q", cmd)
}

// currentPrimary resolves the emotion a diagnostic or remedy should target,
// preferring the session's working copy over the persisted context details.
func (o *Orchestrator) currentPrimary(sess *domain.Session) domain.PrimaryEmotion {
	if sess.CurrentEmotion != nil {
		return sess.CurrentEmotion.Primary
	}
	if norm := emotionFromContext(sess.Context); norm != nil {
		return norm.Primary
	}
	return domain.Joy
}

func (o *Orchestrator) conversationContext(sess *domain.Session) ports.ConversationContext {
	return ports.ConversationContext{
		UserID:         sess.UserID,
		State:          sess.State,
		CurrentEmotion: sess.CurrentEmotion,
		Goal:           goalFor(sess.State),
		RecentTurns:    sess.History,
	}
}

// goalFor infers the phase goal handed to the reasoner.
func goalFor(state domain.SessionState) string {
	switch state {
	case domain.StateSessionStarted:
		return "emotion_identification"
	case domain.StateEmotionIdentified:
		return "understanding_emotions"
	case domain.StateDiagnosticComplete:
		return "coping_strategies"
	case domain.StateRemedyProvided:
		return "implementation_support"
	}
	return ""
}

// emotionToMap flattens the normalized emotion into the session's free-form
// context so it survives JSON persistence.
func emotionToMap(norm *domain.NormalizedEmotion) map[string]any {
	var out map[string]any
	if err := mapstructure.Decode(norm, &out); err != nil {
		return nil
	}
	return out
}

// emotionFromContext decodes the persisted emotion details, if any.
func emotionFromContext(ctx map[string]any) *domain.NormalizedEmotion {
	raw, ok := ctx[contextKeyEmotion]
	if !ok {
		return nil
	}
	var out domain.NormalizedEmotion
	if err := mapstructure.Decode(raw, &out); err != nil {
		return nil
	}
	if out.Primary == "" {
		return nil
	}
	return &out
}

// Status reports the session state and legal commands without mutation.
func (o *Orchestrator) Status(ctx context.Context, userID string) (*Response, error) {
	sess, err := o.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return statusResponse(sess.State, validator.AvailableCommands(sess.State)), nil
}

// MoodHistory returns up to limit recent mood entries for a user.
func (o *Orchestrator) MoodHistory(ctx context.Context, userID string, limit int) ([]domain.MoodEntry, error) {
	if limit <= 0 {
		limit = o.moodLimit
	}
	return o.sessions.MoodHistory(ctx, userID, limit)
}
