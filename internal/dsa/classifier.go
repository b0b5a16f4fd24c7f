package dsa

import "strings"

// ReplyIntent is the deterministic classification of a candidate reply that
// controls whether the dialogue terminates before any model call.
type ReplyIntent string

const (
	ReplyGiveUp    ReplyIntent = "giveup"
	ReplyConfident ReplyIntent = "confident"
	ReplyCompleted ReplyIntent = "completed"
	ReplyNone      ReplyIntent = "none"
)

// ReplyClassifier decides whether a candidate reply terminates the session.
// The phrase lists are data, not control flow, so they can be tested and
// extended without touching the dialogue engine.
type ReplyClassifier interface {
	Classify(text string) ReplyIntent
}

type phraseClassifier struct {
	giveUp    []string
	confident []string
	completed []string
}

var giveUpPhrases = []string{
	"exit", "quit", "bye", "goodbye", "give up", "i give up", "can't solve", "cannot solve",
	"stuck", "don't know", "do not know", "not sure", "stop", "end interview",
}

var confidencePhrases = []string{
	"yeah now i can", "i can solve", "i can do it", "i got it", "i understand now",
	"clear now", "makes sense now", "i can solve it now",
}

var completionPhrases = []string{
	"i am done", "i'm done", "done", "completed", "that's it", "that is it",
	"finished", "i'm finished", "i am finished", "all done", "i'm all done",
}

// NewPhraseClassifier returns the default literal-phrase classifier.
// Give-up phrases take priority over confidence, then completion.
func NewPhraseClassifier() ReplyClassifier {
	return &phraseClassifier{
		giveUp:    giveUpPhrases,
		confident: confidencePhrases,
		completed: completionPhrases,
	}
}

func (c *phraseClassifier) Classify(text string) ReplyIntent {
	t := strings.ToLower(strings.TrimSpace(text))

	if containsAny(t, c.giveUp) {
		return ReplyGiveUp
	}
	if containsAny(t, c.confident) {
		return ReplyConfident
	}
	if containsAny(t, c.completed) {
		return ReplyCompleted
	}
	return ReplyNone
}

var interviewerClosePhrases = []string{
	"good job", "well done", "thank you", "excellent work", "that's all", "great work",
	"this concludes", "we're done", "no further questions", "end of interview", "goodbye", "bye",
}

// IsInterviewerClosing checks the interviewer's free-text utterance against
// the closing-phrase list. Substring matching is lossy: a polite "thank you"
// mid-dialogue closes the session too. Kept as-is rather than adding a
// second structured-output call purely for control flow.
func IsInterviewerClosing(response string) bool {
	return containsAny(strings.ToLower(response), interviewerClosePhrases)
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
