package interview

import "strings"

// Intent classifies what the candidate's utterance is asking for. The
// engine does not route on it; callers decide whether to rephrase, hint or
// evaluate based on the classification.
type Intent string

const (
	IntentClarify Intent = "clarify"
	IntentHint    Intent = "hint"
	IntentAnswer  Intent = "answer"
)

var clarifyKeywords = []string{
	"don't understand", "dont understand", "didn't understand", "didnt understand",
	"repeat", "say again", "rephrase", "simplify", "simpler",
	"can you explain", "explain again", "not clear", "confused",
}

var hintKeywords = []string{
	"hint", "help", "nudge", "clue", "guide me", "guide",
}

// DetectIntent is a pure case-insensitive substring classification of the
// candidate's utterance into clarify, hint or answer (the default).
func DetectIntent(userText string) Intent {
	t := strings.ToLower(strings.TrimSpace(userText))

	for _, k := range clarifyKeywords {
		if strings.Contains(t, k) {
			return IntentClarify
		}
	}
	for _, k := range hintKeywords {
		if strings.Contains(t, k) {
			return IntentHint
		}
	}
	return IntentAnswer
}
