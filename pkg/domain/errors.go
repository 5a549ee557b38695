package domain

import "errors"

// ErrStoreUnavailable is returned when the durable backend is unreachable.
// Surfaced to callers as a retryable transient failure; a request must not
// report success while failing to persist.
var ErrStoreUnavailable = errors.New("session store unavailable")

// ErrMissingParameter is returned when a command that requires a parameter
// is issued without one. Rejected before any state transition is consumed.
var ErrMissingParameter = errors.New("missing required parameter")

// ErrBackendUnavailable indicates the reasoning backend failed or timed out.
// Absorbed locally by falling back to the deterministic stub; never fatal
// to a request.
var ErrBackendUnavailable = errors.New("reasoning backend unavailable")
