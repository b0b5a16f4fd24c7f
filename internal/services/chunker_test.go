package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	chunker := NewTextChunker()
	chunks := chunker.ChunkText("A short rubric paragraph.", 1000, 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short rubric paragraph.", chunks[0])
}

func TestChunkText_EmptyInput(t *testing.T) {
	chunker := NewTextChunker()
	assert.Empty(t, chunker.ChunkText("", 1000, 200))
	assert.Empty(t, chunker.ChunkText("\n\n\n\n", 1000, 200))
}

func TestChunkText_SplitsOnParagraphs(t *testing.T) {
	chunker := NewTextChunker()
	paraA := strings.Repeat("alpha ", 30)
	paraB := strings.Repeat("beta ", 30)

	chunks := chunker.ChunkText(paraA+"\n\n"+paraB, 200, 0)
	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0], "alpha")
	assert.Contains(t, chunks[1], "beta")
}

func TestChunkText_RespectsMaxSize(t *testing.T) {
	chunker := NewTextChunker()
	// One giant paragraph of short sentences.
	text := strings.TrimSpace(strings.Repeat("This sentence talks about evaluation criteria. ", 60))

	chunks := chunker.ChunkText(text, 300, 50)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 400, "chunk should stay near the max size")
	}
}

func TestChunkText_MultibyteTextStaysWithinByteBudget(t *testing.T) {
	chunker := NewTextChunker()
	// CJK runes are three bytes each, so this paragraph is under the limit
	// in runes but over it in bytes. Both size checks must measure bytes or
	// the oversized paragraph slips through as one chunk.
	text := strings.TrimSpace(strings.Repeat("評価基準を説明する. ", 10))

	chunks := chunker.ChunkText(text, 200, 0)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 200, "chunk byte length should stay within the max size")
	}
}

func TestChunkText_OverlapCarriesTail(t *testing.T) {
	chunker := NewTextChunker()
	text := strings.TrimSpace(strings.Repeat("Scoring guidance for interviews here. ", 40))

	chunks := chunker.ChunkText(text, 300, 60)
	require.Greater(t, len(chunks), 1)

	tail := lastRunes(chunks[0], 60)
	assert.True(t, strings.HasPrefix(chunks[1], tail), "second chunk should start with the previous tail")
}
