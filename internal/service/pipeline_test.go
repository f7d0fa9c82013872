package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docexplore/internal/aggregate"
	"docexplore/internal/chunker"
	"docexplore/internal/config"
	"docexplore/internal/domain"
)

var corpus = []string{
	strings.Repeat("Quarterly revenue grew as sales expanded across every region. Revenue forecasts were raised again. ", 4),
	strings.Repeat("Engineers refactored the database layer and improved query latency. Database indexes were rebuilt. ", 4),
	strings.Repeat("Gardeners planted tomatoes and watered the soil each morning. Tomatoes ripened in the greenhouse. ", 4),
}

type documentChunker struct{}

func (documentChunker) Split(text string) []string {
	return strings.Split(text, chunker.BoundaryMarker)
}

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := config.Default()
	cfg.Chunker.MaxChars = 200
	cfg.Clustering.Restarts = 3
	cfg.Output.Dir = t.TempDir()
	return cfg
}

func TestRun_WritesEveryStage(t *testing.T) {
	cfg := testConfig(t)
	res, err := NewPipeline(cfg, nil).Run(context.Background(), corpus)
	require.NoError(t, err)

	for _, name := range stageFiles {
		assert.FileExists(t, filepath.Join(cfg.Output.Dir, name))
	}
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, res.RunID, res.Insights.RunID)

	raw, err := os.ReadFile(filepath.Join(cfg.Output.Dir, ChunksFile))
	require.NoError(t, err)
	spans, err := chunker.Decode(strings.NewReader(string(raw)))
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, c := range aggregate.Chunks(res.Artifact) {
		assert.False(t, seen[c.ID], "chunk %d in two clusters", c.ID)
		seen[c.ID] = true
	}
	assert.Len(t, seen, len(chunker.Records(spans)))

	a, err := aggregate.Read(filepath.Join(cfg.Output.Dir, ArtifactFile))
	require.NoError(t, err)
	assert.Equal(t, res.Artifact, a)

	names, err := LoadNames(filepath.Join(cfg.Output.Dir, NamesFile))
	require.NoError(t, err)
	for _, c := range a.Clusters {
		assert.Equal(t, names[c.ID], c.Name)
	}

	ins, err := LoadInsights(filepath.Join(cfg.Output.Dir, InsightsFile))
	require.NoError(t, err)
	assert.Len(t, ins.Topics, len(a.Clusters))
}

func TestRun_Deterministic(t *testing.T) {
	cfg := testConfig(t)
	first, err := NewPipeline(cfg, nil).Run(context.Background(), corpus)
	require.NoError(t, err)
	second, err := NewPipeline(cfg, nil).Run(context.Background(), corpus)
	require.NoError(t, err)

	assert.Equal(t, first.Artifact, second.Artifact)
	assert.Equal(t, first.Insights.Layout, second.Insights.Layout)
}

func TestRun_EmptyInputLeavesNoArtifact(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Output.Dir, ArtifactFile), []byte("{}"), 0o644))

	_, err := NewPipeline(cfg, nil).Run(context.Background(), []string{"", "   "})
	assert.ErrorIs(t, err, domain.ErrNoChunks)
	assert.NoFileExists(t, filepath.Join(cfg.Output.Dir, ArtifactFile))
}

func TestRun_SingleChunkIsInsufficient(t *testing.T) {
	cfg := testConfig(t)
	_, err := NewPipeline(cfg, nil).Run(context.Background(), []string{"Revenue grew."})
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestRun_NumericDocuments(t *testing.T) {
	cfg := testConfig(t)
	res, err := NewPipeline(cfg, nil).Run(context.Background(), []string{
		"2021 2022 2023 2024",
		"100 200 300 400 500 600 700 800 900",
	})
	require.NoError(t, err)
	require.Len(t, res.Artifact.Clusters, 2)
	for _, c := range aggregate.Chunks(res.Artifact) {
		assert.Len(t, c.Embedding, 13)
	}
}

func TestRun_UsesInjectedChunker(t *testing.T) {
	cfg := testConfig(t)
	p := NewPipeline(cfg, nil)
	p.chunker = documentChunker{}

	res, err := p.Run(context.Background(), corpus)
	require.NoError(t, err)
	assert.Len(t, aggregate.Chunks(res.Artifact), len(corpus))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPipeline(testConfig(t), nil).Run(ctx, corpus)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunDir(t *testing.T) {
	in := t.TempDir()
	for i, text := range corpus {
		name := filepath.Join(in, string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(name, []byte(text), 0o644))
	}
	res, err := NewPipeline(testConfig(t), nil).RunDir(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Artifact.Clusters)
}
