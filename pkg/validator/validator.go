/*
Package validator enforces the legal command sequence over session states.

The permissible commands per state and the state each command leads to are
both expressed as data tables, so Validate and AvailableCommands are derived
from the same source and cannot drift apart. Validate is a pure function:
no I/O, no mutation, deterministic for identical inputs.
*/
package validator

import (
	"fmt"
	"strings"

	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/sereno-labs/sereno/pkg/wheel"
)

// Result is the outcome of validating one command against a session state.
// Pure output, never persisted.
type Result struct {
	Valid        bool
	Category     domain.CommandCategory
	CurrentState domain.SessionState
	NextState    domain.SessionState
	ErrorMessage string
	Suggested    []string

	// Emotion carries the taxonomy normalization for feel commands so the
	// caller does not have to re-run it.
	Emotion *domain.NormalizedEmotion
}

// selfHelp and tracking are valid from any state except NoSession
// (checkin additionally from NoSession), so the table repeats them.
var selfHelp = []string{domain.CmdBreathe, domain.CmdQuote, domain.CmdJournal, domain.CmdAudio}

// stateCommands is the transition table's availability half: the commands
// legal from each state. sos, exit and status are legal everywhere.
var stateCommands = map[domain.SessionState][]string{
	domain.StateNoSession: {
		domain.CmdStart, domain.CmdCheckin,
		domain.CmdSOS, domain.CmdExit, domain.CmdStatus,
	},
	domain.StateSessionStarted: join(
		[]string{domain.CmdAsk, domain.CmdWheel, domain.CmdFeel},
		selfHelp,
		[]string{domain.CmdCheckin, domain.CmdMoodlog, domain.CmdSOS, domain.CmdExit, domain.CmdStatus},
	),
	domain.StateEmotionIdentified: join(
		[]string{domain.CmdAsk, domain.CmdWhy, domain.CmdRemedy},
		selfHelp,
		[]string{domain.CmdCheckin, domain.CmdMoodlog, domain.CmdSOS, domain.CmdExit, domain.CmdStatus},
	),
	domain.StateDiagnosticComplete: join(
		[]string{domain.CmdAsk, domain.CmdWhy, domain.CmdRemedy},
		selfHelp,
		[]string{domain.CmdCheckin, domain.CmdMoodlog, domain.CmdSOS, domain.CmdExit, domain.CmdStatus},
	),
	domain.StateRemedyProvided: join(
		[]string{domain.CmdAsk, domain.CmdWheel, domain.CmdFeel},
		selfHelp,
		[]string{domain.CmdCheckin, domain.CmdMoodlog, domain.CmdSOS, domain.CmdExit, domain.CmdStatus},
	),
	domain.StateEmergency: join(
		selfHelp,
		[]string{domain.CmdCheckin, domain.CmdMoodlog, domain.CmdSOS, domain.CmdExit, domain.CmdStatus},
	),
}

func join(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// transition describes the table's next-state half for one command.
// Zero value means "state unchanged".
type transition struct {
	// to is the fixed destination, if any.
	to domain.SessionState
	// byState overrides the destination for specific current states.
	byState map[domain.SessionState]domain.SessionState
}

var transitions = map[string]transition{
	domain.CmdSOS:   {to: domain.StateEmergency},
	domain.CmdStart: {to: domain.StateSessionStarted},
	domain.CmdExit:  {to: domain.StateNoSession},
	domain.CmdFeel:  {to: domain.StateEmotionIdentified},
	domain.CmdWhy: {byState: map[domain.SessionState]domain.SessionState{
		domain.StateEmotionIdentified: domain.StateDiagnosticComplete,
		// Re-running the diagnostic is idempotent: state unchanged.
	}},
	domain.CmdRemedy: {to: domain.StateRemedyProvided},
	domain.CmdAsk: {byState: map[domain.SessionState]domain.SessionState{
		// A free-form ask after a remedy starts a new issue cycle.
		domain.StateRemedyProvided: domain.StateSessionStarted,
	}},
	domain.CmdCheckin: {byState: map[domain.SessionState]domain.SessionState{
		domain.StateNoSession:      domain.StateSessionStarted,
		domain.StateRemedyProvided: domain.StateSessionStarted,
	}},
}

// nextState resolves the destination for a command from the current state.
func nextState(cmd string, current domain.SessionState) domain.SessionState {
	t, ok := transitions[cmd]
	if !ok {
		return current
	}
	if next, ok := t.byState[current]; ok {
		return next
	}
	if t.to != "" {
		return t.to
	}
	return current
}

// AvailableCommands returns the command names legal from the given state,
// derived from the same table Validate consults.
func AvailableCommands(state domain.SessionState) []string {
	cmds, ok := stateCommands[state]
	if !ok {
		return nil
	}
	return append([]string(nil), cmds...)
}

func suggestions(state domain.SessionState) []string {
	cmds := AvailableCommands(state)
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = "/" + c
	}
	return out
}

// commandsNeedingParameter lists directives rejected without a parameter,
// before any state transition is consumed.
var commandsNeedingParameter = map[string]bool{
	domain.CmdFeel: true,
}

// Validate checks one command against the current state and returns the
// outcome. context carries the session's free-form annotations; it is read,
// never written.
func Validate(state domain.SessionState, command, parameter string, context map[string]any) Result {
	cmd := domain.NormalizeCommand(command)
	category := domain.CategoryOf(cmd)

	// Emergency is valid from every state and bypasses the table.
	if cmd == domain.CmdSOS {
		return Result{
			Valid:        true,
			Category:     category,
			CurrentState: state,
			NextState:    domain.StateEmergency,
			Suggested:    suggestions(domain.StateEmergency),
		}
	}

	if !domain.IsKnownCommand(cmd) {
		return Result{
			Category:     domain.CategoryUnknown,
			CurrentState: state,
			ErrorMessage: fmt.Sprintf("Unknown command: '/%s'.", cmd),
			Suggested:    suggestions(state),
		}
	}

	// Exit is terminal from every state; next state signals deletion.
	if cmd == domain.CmdExit {
		return Result{
			Valid:        true,
			Category:     category,
			CurrentState: state,
			NextState:    domain.StateNoSession,
			Suggested:    suggestions(domain.StateNoSession),
		}
	}

	if !allowed(state, cmd) {
		sugg := suggestions(state)
		short := sugg
		if len(short) > 5 {
			short = short[:5]
		}
		return Result{
			Category:     category,
			CurrentState: state,
			ErrorMessage: fmt.Sprintf("Command '/%s' not allowed in state %s. Try: %s", cmd, state, strings.Join(short, ", ")),
			Suggested:    sugg,
		}
	}

	if commandsNeedingParameter[cmd] && strings.TrimSpace(parameter) == "" {
		return Result{
			Category:     category,
			CurrentState: state,
			ErrorMessage: fmt.Sprintf("Command '/%s' requires a parameter: %v.", cmd, domain.ErrMissingParameter),
			Suggested:    suggestions(state),
		}
	}

	res := Result{
		Valid:        true,
		Category:     category,
		CurrentState: state,
		NextState:    nextState(cmd, state),
	}
	res.Suggested = suggestions(res.NextState)

	if cmd == domain.CmdFeel {
		norm := wheel.Normalize(parameter)
		res.Emotion = &norm
	}
	return res
}

func allowed(state domain.SessionState, cmd string) bool {
	for _, c := range stateCommands[state] {
		if c == cmd {
			return true
		}
	}
	return false
}

// ValidateRaw parses raw input and validates the resulting command.
func ValidateRaw(raw string, state domain.SessionState, context map[string]any) Result {
	cmd, param := domain.ParseCommand(raw)
	return Validate(state, cmd, param, context)
}
