package llm

import (
	"context"
	"fmt"
	"log"
	"time"
)

// retryGateway decorates a Gateway so that every Generate call runs with the
// configured retry budget. Engines stay retry-unaware; the budget and delay
// are wired once at startup.
type retryGateway struct {
	inner      Gateway
	maxRetries int
}

// NewRetryGateway wraps inner so Generate retries up to maxRetries times.
func NewRetryGateway(inner Gateway, maxRetries int) Gateway {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &retryGateway{inner: inner, maxRetries: maxRetries}
}

func (r *retryGateway) Generate(ctx context.Context, req Request) (string, error) {
	return r.inner.GenerateWithRetry(ctx, req, r.maxRetries)
}

func (r *retryGateway) GenerateWithRetry(ctx context.Context, req Request, maxRetries int) (string, error) {
	return r.inner.GenerateWithRetry(ctx, req, maxRetries)
}

func (r *retryGateway) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return r.inner.GenerateEmbedding(ctx, text)
}

// retryGenerate runs attempt up to maxRetries times, sleeping delay between
// failures and doubling it each time. Cancellation wins over both the next
// attempt and the sleep.
func retryGenerate(ctx context.Context, maxRetries int, delay time.Duration, attempt func() (string, error)) (string, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		result, err := attempt()
		if err == nil {
			return result, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if i < maxRetries {
			log.Printf("⚠️ Generation attempt %d failed: %v. Retrying in %s...\n", i, err, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			delay *= 2
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
