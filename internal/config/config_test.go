package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Chunker.MaxChars)
	assert.Equal(t, 3, cfg.Clustering.MinClusters)
	assert.Equal(t, 50, cfg.Clustering.MaxClusters)
	assert.Equal(t, int64(42), cfg.Clustering.Seed)
	assert.Equal(t, 0.8, cfg.Output.SimilarityThreshold)
	assert.Equal(t, 20, cfg.Output.CharsPerPixel)
	assert.Equal(t, "Document Insights", cfg.Output.Title)
}

func TestLoad_FileValuesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "chunker:\n  max_chars: 1200\nnaming:\n  max_keywords: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.Chunker.MaxChars)
	assert.Equal(t, 4, cfg.Naming.MaxKeywords)
	assert.Equal(t, 1000, cfg.Vectorizer.MaxFeatures)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunker: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvChunkSize, "500")
	t.Setenv(EnvMaxClusters, "7")
	t.Setenv(EnvSimilarityThreshold, "0.65")
	t.Setenv(EnvOutputDir, "/tmp/out")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Chunker.MaxChars)
	assert.Equal(t, 7, cfg.Clustering.MaxClusters)
	assert.Equal(t, 0.65, cfg.Output.SimilarityThreshold)
	assert.Equal(t, "/tmp/out", cfg.Output.Dir)
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv(EnvMaxKeywords, "many")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, EnvMaxKeywords)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Naming.MaxKeywords = 6
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
