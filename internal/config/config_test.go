package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, "window", cfg.Chunker.Type)
	require.Equal(t, 1000, cfg.Chunker.ChunkSize)
	require.Equal(t, 100, cfg.Chunker.Overlap)
	require.True(t, cfg.Chunker.BoundaryAware)
	require.Equal(t, "tfidf", cfg.Embedder.Type)
	require.Equal(t, 5, cfg.Retrieval.TopK)
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embedder:\n  type: tfidf\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1000, cfg.Chunker.ChunkSize)
	require.Equal(t, 3, cfg.Search.MaxResults)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := defaultConfig()
	cfg.Retrieval.TopK = 9
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9, loaded.Retrieval.TopK)
}
