package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_PlainObject(t *testing.T) {
	raw, err := ExtractJSON(`{"score": 7, "reason": "solid answer"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score": 7, "reason": "solid answer"}`, string(raw))
}

func TestExtractJSON_MarkdownFence(t *testing.T) {
	text := "```json\n{\"question\": \"Tell me about a conflict.\"}\n```"
	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"question": "Tell me about a conflict."}`, string(raw))
}

func TestExtractJSON_FenceWithoutLanguageTag(t *testing.T) {
	text := "```\n{\"hint\": \"think about hash maps\"}\n```"
	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hint": "think about hash maps"}`, string(raw))
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	text := "Sure! Here is the evaluation you asked for:\n{\"score\": 4}\nLet me know if you need anything else."
	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score": 4}`, string(raw))
}

func TestExtractJSON_MultilineObjectInProse(t *testing.T) {
	text := "Analysis follows.\n{\n  \"classification\": \"optimized\",\n  \"time_complexity\": \"O(n)\"\n}\nDone."
	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"classification": "optimized", "time_complexity": "O(n)"}`, string(raw))
}

func TestExtractJSON_Garbage(t *testing.T) {
	_, err := ExtractJSON("I cannot produce JSON right now, sorry.")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestExtractJSON_UnbalancedBraces(t *testing.T) {
	_, err := ExtractJSON(`{"score": 7`)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestDecodeJSON_IntoStruct(t *testing.T) {
	var out struct {
		Score float64 `json:"score"`
	}
	err := DecodeJSON("```json\n{\"score\": 8.5}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, 8.5, out.Score)
}

func TestDecodeJSON_TypeMismatchWrapsSentinel(t *testing.T) {
	var out struct {
		Score float64 `json:"score"`
	}
	err := DecodeJSON(`{"score": "high"}`, &out)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}
