package tfidf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbedDeterministic(t *testing.T) {
	e := New()
	corpus := []string{
		"cheeseburger with fries and a shake",
		"grilled chicken sandwich with lettuce",
		"chocolate shake with whipped cream",
	}
	require.NoError(t, e.Prepare(corpus))
	require.Greater(t, e.Dimension(), 0)

	first, err := e.Embed("chocolate shake")
	require.NoError(t, err)
	second, err := e.Embed("chocolate shake")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, first, e.Dimension())
}

func TestEmbedBatchOrderPreserving(t *testing.T) {
	e := New()
	corpus := []string{"alpha beta gamma", "delta epsilon"}
	require.NoError(t, e.Prepare(corpus))

	batch, err := e.EmbedBatch(corpus)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	for i, text := range corpus {
		single, err := e.Embed(text)
		require.NoError(t, err)
		require.Equal(t, single, batch[i])
	}
}

func TestEmbedUnpreparedFails(t *testing.T) {
	e := New()
	_, err := e.Embed("anything")
	require.Error(t, err)
}

func TestPrepareEmptyCorpusFails(t *testing.T) {
	e := New()
	require.Error(t, e.Prepare(nil))
}

func TestEmbedUnknownTokensYieldZeroVector(t *testing.T) {
	e := New()
	require.NoError(t, e.Prepare([]string{"alpha beta"}))
	vec, err := e.Embed("zzz qqq")
	require.NoError(t, err)
	for _, v := range vec {
		require.Zero(t, v)
	}
}
