package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedOutput marks a model response that could not be parsed into
// the expected structure. Handlers treat it as a retryable server error.
var ErrMalformedOutput = errors.New("malformed model output")

// ExtractJSON recovers a JSON object from raw model text. The response may
// be wrapped in a markdown code fence or surrounded by prose; a fenced inner
// segment is preferred, then a direct parse, then the substring between the
// first '{' and the last '}' with newlines collapsed.
func ExtractJSON(text string) (json.RawMessage, error) {
	t := strings.TrimSpace(text)

	if strings.HasPrefix(t, "```") {
		parts := strings.Split(t, "```")
		if len(parts) >= 3 {
			t = parts[1]
			t = strings.TrimPrefix(t, "json")
		} else {
			t = strings.Trim(t, "`")
		}
		t = strings.TrimSpace(t)
	}

	if json.Valid([]byte(t)) {
		return json.RawMessage(t), nil
	}

	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\n", " ")
	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start != -1 && end != -1 && end > start {
		candidate := t[start : end+1]
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, fmt.Errorf("%w: no JSON object found in response", ErrMalformedOutput)
}

// DecodeJSON extracts and unmarshals a JSON object from model text into
// target. Every structured-output call goes through here so parse failures
// carry ErrMalformedOutput instead of raw json errors.
func DecodeJSON(text string, target interface{}) error {
	raw, err := ExtractJSON(text)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	return nil
}
