package llm

import "context"

// Message is one turn of an ongoing dialogue replayed to the model.
// Role is either RoleUser (candidate/handler side) or RoleModel.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Request describes a single generation call. When Messages is non-empty the
// full dialogue is replayed and Prompt is ignored; otherwise Prompt is sent
// as a single user turn. JSON asks the model for a structured JSON response.
type Request struct {
	System      string
	Prompt      string
	Messages    []Message
	Temperature float32
	JSON        bool
}

// Gateway is the single model capability the engines depend on: send a
// structured prompt, get free-form text back. Transport failures and empty
// responses surface as errors; callers recover via their own fallbacks.
// GenerateEmbedding serves the rubric knowledge base, not the engines.
type Gateway interface {
	Generate(ctx context.Context, req Request) (string, error)
	GenerateWithRetry(ctx context.Context, req Request, maxRetries int) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
