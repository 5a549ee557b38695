package reasoner

import (
	"context"
	"log/slog"
	"time"

	"github.com/sereno-labs/sereno/internal/logging"
	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/sereno-labs/sereno/pkg/ports"
)

// DefaultTimeout bounds a single backend attempt.
const DefaultTimeout = 5 * time.Second

// Fallback wraps a primary backend with a bounded timeout and degrades to
// the deterministic stub on any error. One attempt, no retries; an
// abandoned backend call never blocks the request.
type Fallback struct {
	primary ports.Reasoner
	stub    *Stub
	timeout time.Duration
	logger  *slog.Logger

	// onFallback, when set, is invoked once per absorbed failure
	// (metrics hook).
	onFallback func()
}

// FallbackOption configures the wrapper.
type FallbackOption func(*Fallback)

// WithTimeout overrides the per-call deadline.
func WithTimeout(d time.Duration) FallbackOption {
	return func(f *Fallback) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithLogger configures a logger for absorbed failures.
func WithLogger(logger *slog.Logger) FallbackOption {
	return func(f *Fallback) {
		f.logger = logger
	}
}

// WithFallbackHook registers a callback fired on each absorbed failure.
func WithFallbackHook(fn func()) FallbackOption {
	return func(f *Fallback) {
		f.onFallback = fn
	}
}

// NewFallback wraps primary. Passing the stub itself as primary is valid
// and simply makes the timeout a no-op.
func NewFallback(primary ports.Reasoner, opts ...FallbackOption) *Fallback {
	f := &Fallback{
		primary: primary,
		stub:    NewStub(),
		timeout: DefaultTimeout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fallback) absorbed(op string, err error) {
	f.logger.Warn("reasoning backend failed, using stub",
		"op", op,
		"err", err,
	)
	if f.onFallback != nil {
		f.onFallback()
	}
}

// Analyze delegates to the primary, degrading to the stub on failure.
func (f *Fallback) Analyze(ctx context.Context, text string, cc ports.ConversationContext) (ports.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	out, err := f.primary.Analyze(ctx, text, cc)
	if err != nil {
		f.absorbed("analyze", err)
		return f.stub.Analyze(context.WithoutCancel(ctx), text, cc)
	}
	return out, nil
}

// ProbeQuestions delegates to the primary, degrading to the stub on failure.
func (f *Fallback) ProbeQuestions(ctx context.Context, emotion domain.PrimaryEmotion, cc ports.ConversationContext) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	out, err := f.primary.ProbeQuestions(ctx, emotion, cc)
	if err != nil {
		f.absorbed("probe_questions", err)
		return f.stub.ProbeQuestions(context.WithoutCancel(ctx), emotion, cc)
	}
	return out, nil
}

// SuggestRemedies delegates to the primary, degrading to the stub on failure.
func (f *Fallback) SuggestRemedies(ctx context.Context, emotion domain.PrimaryEmotion, cc ports.ConversationContext) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	out, err := f.primary.SuggestRemedies(ctx, emotion, cc)
	if err != nil {
		f.absorbed("suggest_remedies", err)
		return f.stub.SuggestRemedies(context.WithoutCancel(ctx), emotion, cc)
	}
	return out, nil
}

// Converse delegates to the primary, degrading to the stub on failure.
func (f *Fallback) Converse(ctx context.Context, input string, cc ports.ConversationContext) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	out, err := f.primary.Converse(ctx, input, cc)
	if err != nil {
		f.absorbed("converse", err)
		return f.stub.Converse(context.WithoutCancel(ctx), input, cc)
	}
	return out, nil
}
