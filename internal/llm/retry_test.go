package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingGateway captures the retry budget it is handed.
type recordingGateway struct {
	response       string
	err            error
	generateCalls  int
	retryCalls     int
	lastMaxRetries int
	embeddingCalls int
}

func (g *recordingGateway) Generate(ctx context.Context, req Request) (string, error) {
	g.generateCalls++
	return g.response, g.err
}

func (g *recordingGateway) GenerateWithRetry(ctx context.Context, req Request, maxRetries int) (string, error) {
	g.retryCalls++
	g.lastMaxRetries = maxRetries
	return g.response, g.err
}

func (g *recordingGateway) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	g.embeddingCalls++
	return make([]float32, 768), nil
}

func TestRetryGateway_GenerateRoutesThroughRetry(t *testing.T) {
	inner := &recordingGateway{response: `{"ok": true}`}
	gw := NewRetryGateway(inner, 4)

	out, err := gw.Generate(context.Background(), Request{Prompt: "hello"})
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)
	assert.Equal(t, 1, inner.retryCalls)
	assert.Equal(t, 4, inner.lastMaxRetries)
	assert.Zero(t, inner.generateCalls)
}

func TestRetryGateway_ClampsBudgetToOne(t *testing.T) {
	inner := &recordingGateway{response: "x"}
	gw := NewRetryGateway(inner, 0)

	_, err := gw.Generate(context.Background(), Request{Prompt: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.lastMaxRetries)
}

func TestRetryGateway_DelegatesEmbedding(t *testing.T) {
	inner := &recordingGateway{}
	gw := NewRetryGateway(inner, 3)

	vec, err := gw.GenerateEmbedding(context.Background(), "rubric text")
	require.NoError(t, err)
	assert.Len(t, vec, 768)
	assert.Equal(t, 1, inner.embeddingCalls)
}

func TestRetryGenerate_SucceedsAfterFailures(t *testing.T) {
	attempts := 0
	out, err := retryGenerate(context.Background(), 3, time.Millisecond, func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("transient")
		}
		return "recovered", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.Equal(t, 3, attempts)
}

func TestRetryGenerate_ExhaustsAttempts(t *testing.T) {
	boom := errors.New("model unavailable")
	attempts := 0
	_, err := retryGenerate(context.Background(), 3, time.Millisecond, func() (string, error) {
		attempts++
		return "", boom
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
}

func TestRetryGenerate_SleepsBetweenAttempts(t *testing.T) {
	delay := 15 * time.Millisecond
	start := time.Now()
	_, err := retryGenerate(context.Background(), 3, delay, func() (string, error) {
		return "", errors.New("transient")
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	// Two pauses with doubling: 15ms + 30ms.
	assert.GreaterOrEqual(t, elapsed, 45*time.Millisecond)
}

func TestRetryGenerate_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	_, err := retryGenerate(ctx, 5, time.Minute, func() (string, error) {
		attempts++
		cancel()
		return "", errors.New("transient")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}
