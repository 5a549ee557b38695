package conversation

import "strings"

// Safety screens applied to raw input before any reasoning happens.
// Crisis indicators force the emergency path; inappropriate content gets a
// redirect without consuming a state transition.

var crisisKeywords = []string{
	"suicide", "kill myself", "end it all", "want to die", "hurt myself",
	"self harm", "cutting", "overdose", "can't go on", "no point living",
	"better off dead", "not worth living", "kill me",
}

var inappropriateKeywords = []string{
	"sexual", "porn", "naked", "drug dealer", "illegal drugs",
	"violence", "weapon", "bomb", "terrorist", "hate speech",
}

// IsCrisis reports whether text contains crisis indicators.
func IsCrisis(text string) bool {
	return containsAny(text, crisisKeywords)
}

// IsInappropriate reports whether text contains content outside the
// assistant's scope.
func IsInappropriate(text string) bool {
	return containsAny(text, inappropriateKeywords)
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CrisisMessage is the standard crisis response text.
const CrisisMessage = "I'm concerned about what you're sharing. Your safety is important. " +
	"Please reach out to a mental health professional, trusted friend, or crisis hotline immediately. " +
	"In the US: 988 Suicide & Crisis Lifeline (call or text). " +
	"You don't have to go through this alone."

// RedirectMessage is the response for out-of-scope content.
const RedirectMessage = "I'm designed to help with emotional support and well-being. " +
	"Let's focus on your feelings and healthy coping strategies. " +
	"How are you feeling emotionally right now?"
