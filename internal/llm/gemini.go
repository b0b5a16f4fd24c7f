package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

type geminiGateway struct {
	client     *genai.Client
	modelName  string
	embedModel string
	retryDelay time.Duration
}

// NewGeminiGateway creates a Gateway backed by the Gemini API. retryDelay is
// the initial pause between failed generation attempts.
func NewGeminiGateway(apiKey string, retryDelay time.Duration) (Gateway, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiGateway{
		client:     client,
		modelName:  "gemini-2.5-flash",
		embedModel: "text-embedding-004",
		retryDelay: retryDelay,
	}, nil
}

// Generate implements Gateway.
func (g *geminiGateway) Generate(ctx context.Context, req Request) (string, error) {
	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	var contents []*genai.Content
	if len(req.Messages) > 0 {
		for _, msg := range req.Messages {
			var role genai.Role = genai.RoleUser
			if msg.Role == RoleModel {
				role = genai.RoleModel
			}
			contents = append(contents, genai.NewContentFromText(msg.Content, role))
		}
	} else {
		contents = genai.Text(req.Prompt)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateWithRetry implements Gateway.
func (g *geminiGateway) GenerateWithRetry(ctx context.Context, req Request, maxRetries int) (string, error) {
	return retryGenerate(ctx, maxRetries, g.retryDelay, func() (string, error) {
		return g.Generate(ctx, req)
	})
}

// GenerateEmbedding returns the embedding vector for the given text. Used by
// the knowledge base for rubric retrieval, not by the interview engines.
func (g *geminiGateway) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
