package domain

import "strings"

// Command names form the fixed directive vocabulary. Free text with no
// recognized directive defaults to CmdAsk.
const (
	CmdStart   = "start"
	CmdExit    = "exit"
	CmdAsk     = "ask"
	CmdWheel   = "wheel"
	CmdFeel    = "feel"
	CmdWhy     = "why"
	CmdRemedy  = "remedy"
	CmdBreathe = "breathe"
	CmdQuote   = "quote"
	CmdJournal = "journal"
	CmdAudio   = "audio"
	CmdCheckin = "checkin"
	CmdMoodlog = "moodlog"
	CmdSOS     = "sos"
	CmdStatus  = "status"
)

// CommandCategory classifies a directive for the validator's transition table.
type CommandCategory string

const (
	CategorySessionManagement     CommandCategory = "SESSION_MANAGEMENT"
	CategoryEmotionIdentification CommandCategory = "EMOTION_IDENTIFICATION"
	CategoryDiagnostic            CommandCategory = "DIAGNOSTIC"
	CategoryRemedy                CommandCategory = "REMEDY"
	CategorySelfHelp              CommandCategory = "SELF_HELP"
	CategoryTracking              CommandCategory = "TRACKING"
	CategoryEmergency             CommandCategory = "EMERGENCY"
	CategoryUnknown               CommandCategory = "UNKNOWN"
)

var commandCategories = map[string]CommandCategory{
	CmdStart:   CategorySessionManagement,
	CmdExit:    CategorySessionManagement,
	CmdStatus:  CategorySessionManagement,
	CmdAsk:     CategoryEmotionIdentification,
	CmdWheel:   CategoryEmotionIdentification,
	CmdFeel:    CategoryEmotionIdentification,
	CmdWhy:     CategoryDiagnostic,
	CmdRemedy:  CategoryRemedy,
	CmdBreathe: CategorySelfHelp,
	CmdQuote:   CategorySelfHelp,
	CmdJournal: CategorySelfHelp,
	CmdAudio:   CategorySelfHelp,
	CmdCheckin: CategoryTracking,
	CmdMoodlog: CategoryTracking,
	CmdSOS:     CategoryEmergency,
}

// CategoryOf returns the category of a command name, or CategoryUnknown.
func CategoryOf(cmd string) CommandCategory {
	if c, ok := commandCategories[NormalizeCommand(cmd)]; ok {
		return c
	}
	return CategoryUnknown
}

// Commands returns all known command names.
func Commands() []string {
	return []string{
		CmdStart, CmdExit, CmdAsk, CmdWheel, CmdFeel, CmdWhy, CmdRemedy,
		CmdBreathe, CmdQuote, CmdJournal, CmdAudio, CmdCheckin, CmdMoodlog,
		CmdSOS, CmdStatus,
	}
}

// IsKnownCommand reports whether cmd names a recognized directive.
func IsKnownCommand(cmd string) bool {
	_, ok := commandCategories[NormalizeCommand(cmd)]
	return ok
}

// NormalizeCommand strips a leading slash and lowercases the name.
func NormalizeCommand(cmd string) string {
	c := strings.ToLower(strings.TrimSpace(cmd))
	return strings.TrimPrefix(c, "/")
}

// ParseCommand splits raw input into (command, parameter).
//
// Input starting with '/' yields the directive (lowercased) and the rest as
// parameter (original case, trimmed). Anything else is an implicit ask with
// the whole text as parameter. Empty input parses to a bare ask.
func ParseCommand(raw string) (cmd, param string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return CmdAsk, ""
	}
	if !strings.HasPrefix(text, "/") {
		return CmdAsk, text
	}
	payload := strings.TrimSpace(text[1:])
	if payload == "" {
		return CmdAsk, ""
	}
	parts := strings.SplitN(payload, " ", 2)
	cmd = strings.ToLower(parts[0])
	if len(parts) > 1 {
		param = strings.TrimSpace(parts[1])
	}
	return cmd, param
}
