package dsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhraseClassifier(t *testing.T) {
	c := NewPhraseClassifier()

	tests := []struct {
		name string
		text string
		want ReplyIntent
	}{
		{"give up plain", "I give up", ReplyGiveUp},
		{"give up stuck", "honestly I'm stuck on this", ReplyGiveUp},
		{"give up quit", "quit", ReplyGiveUp},
		{"give up mixed case", "I Don't Know", ReplyGiveUp},
		{"confident", "yeah now I can solve it", ReplyConfident},
		{"confident got it", "oh I got it!", ReplyConfident},
		{"completed", "I'm done with my explanation", ReplyCompleted},
		{"completed finished", "finished", ReplyCompleted},
		{"none", "the loop runs n times so it's linear", ReplyNone},
		{"none empty", "", ReplyNone},
		// Give-up wins when phrases from multiple classes appear.
		{"give up beats completed", "I'm done, I give up", ReplyGiveUp},
		// "not sure" is a give-up phrase even inside a longer sentence.
		{"give up not sure", "I'm not sure about the complexity but I got it", ReplyGiveUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestIsInterviewerClosing(t *testing.T) {
	assert.True(t, IsInterviewerClosing("Great work today, this concludes our session."))
	assert.True(t, IsInterviewerClosing("Thank you for walking me through that."))
	assert.False(t, IsInterviewerClosing("How would you handle duplicate keys?"))
}
