package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"clarify plain", "I don't understand the question", IntentClarify},
		{"clarify no apostrophe", "i dont understand", IntentClarify},
		{"clarify rephrase", "Could you rephrase that?", IntentClarify},
		{"clarify confused", "I'm a bit confused here", IntentClarify},
		{"clarify mixed case", "Can You EXPLAIN again please", IntentClarify},
		{"hint", "can I get a hint?", IntentHint},
		{"hint clue", "give me a clue", IntentHint},
		{"hint help", "help me out here", IntentHint},
		{"answer default", "In my last job I led a migration to Kubernetes.", IntentAnswer},
		{"answer empty", "", IntentAnswer},
		// Clarify keywords win over hint keywords when both appear.
		{"clarify beats hint", "I'm confused, can I get a hint?", IntentClarify},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectIntent(tt.text))
		})
	}
}
