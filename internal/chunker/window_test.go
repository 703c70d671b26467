package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
)

func TestNewWindowChunkerValidation(t *testing.T) {
	_, err := NewWindowChunker(0, 0, false)
	require.ErrorIs(t, err, domain.ErrConfig)

	_, err = NewWindowChunker(-5, 0, false)
	require.ErrorIs(t, err, domain.ErrConfig)

	_, err = NewWindowChunker(100, 100, false)
	require.ErrorIs(t, err, domain.ErrConfig)

	_, err = NewWindowChunker(100, 150, false)
	require.ErrorIs(t, err, domain.ErrConfig)

	_, err = NewWindowChunker(100, -1, false)
	require.ErrorIs(t, err, domain.ErrConfig)

	_, err = NewWindowChunker(100, 99, true)
	require.NoError(t, err)
}

func TestWindowChunkerEmptyInput(t *testing.T) {
	c, err := NewWindowChunker(500, 50, false)
	require.NoError(t, err)

	chunks, err := c.Chunk("")
	require.NoError(t, err)
	require.Empty(t, chunks)

	chunks, err = c.Chunk("   \n\t  \n")
	require.NoError(t, err)
	require.Empty(t, chunks)
}

func TestWindowChunkerShortInput(t *testing.T) {
	c, err := NewWindowChunker(500, 50, false)
	require.NoError(t, err)

	chunks, err := c.Chunk("hello world")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, 0, chunks[0].ID)
	require.Equal(t, "hello world", chunks[0].Text)
	require.Equal(t, 0, chunks[0].Start)
	require.Equal(t, 11, chunks[0].End)
}

func TestWindowChunkerDeterministicCount(t *testing.T) {
	text := strings.Repeat("abcdefghij", 300) // 3000 chars
	c, err := NewWindowChunker(500, 50, false)
	require.NoError(t, err)

	first, err := c.Chunk(text)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Window advances by size-overlap=450: starts 0,450,...,2700 -> 7 chunks.
	require.Len(t, first, 7)

	second, err := c.Chunk(text)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestWindowChunkerInvariants(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 80)
	c, err := NewWindowChunker(200, 40, true)
	require.NoError(t, err)

	chunks, err := c.Chunk(text)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	prevEnd := 0
	for i, ch := range chunks {
		require.Equal(t, i, ch.ID)
		require.NotEmpty(t, strings.TrimSpace(ch.Text))
		require.GreaterOrEqual(t, ch.Start, 0)
		require.Less(t, ch.Start, ch.End)
		require.LessOrEqual(t, ch.End, len(text))
		if i > 0 {
			// Consecutive chunks leave no uncovered gap.
			require.LessOrEqual(t, ch.Start, prevEnd)
		}
		prevEnd = ch.End
	}
	require.GreaterOrEqual(t, prevEnd, len(strings.TrimSpace(text)))
}

func TestWindowChunkerBoundaryAware(t *testing.T) {
	// Rows are short lines; boundary-aware mode must cut at a newline
	// instead of mid-row.
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("Item: Cheeseburger | Calories: 550 | Protein: 25g\n")
	}
	text := b.String()

	c, err := NewWindowChunker(500, 50, true)
	require.NoError(t, err)
	chunks, err := c.Chunk(text)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, ch := range chunks {
		for _, line := range strings.Split(ch.Text, "\n") {
			require.True(t, strings.HasSuffix(line, "25g"), "row split mid-line: %q", line)
		}
	}
}

func TestWindowChunkerNoNewlineKeepsNaiveBoundary(t *testing.T) {
	text := strings.Repeat("x", 1200)
	c, err := NewWindowChunker(500, 50, true)
	require.NoError(t, err)
	chunks, err := c.Chunk(text)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	require.Equal(t, 500, len(chunks[0].Text))
}

func TestWindowChunkerTermination(t *testing.T) {
	c, err := NewWindowChunker(3, 2, false)
	require.NoError(t, err)
	chunks, err := c.Chunk(strings.Repeat("ab ", 50))
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
}
