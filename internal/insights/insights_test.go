package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docexplore/internal/domain"
	"docexplore/internal/summarizer"
)

func item(id, cluster int, text string, vec []float64) domain.Chunk {
	return domain.Chunk{ID: id, Text: text, Embedding: vec}.WithCluster(cluster)
}

func artifact() domain.Artifact {
	return domain.Artifact{
		Title: "Doc",
		Clusters: []domain.ArtifactCluster{
			{ID: 0, Name: "Revenue", Items: []domain.Chunk{
				item(0, 0, "Revenue growth was strong.", []float64{1, 0}),
				item(1, 0, "Revenue beat forecasts.", []float64{0.9, 0.1}),
			}},
			{ID: 1, Name: "Costs", Items: []domain.Chunk{
				item(2, 1, "Revenue costs margin pressure.", []float64{0, 1}),
			}},
			{ID: 2, Name: "Notes", Items: []domain.Chunk{
				item(3, 2, "Miscellaneous notes without vectors.", nil),
			}},
		},
	}
}

func TestTopKeywords_CountThenFirstOccurrence(t *testing.T) {
	got := TopKeywords([]string{"beta alpha beta", "gamma alpha delta"}, 3)
	assert.Equal(t, []domain.KeywordCount{
		{Word: "beta", Count: 2},
		{Word: "alpha", Count: 2},
		{Word: "gamma", Count: 1},
	}, got)
}

func TestBuild(t *testing.T) {
	ins := Build(artifact(), Options{RunID: "run-1", Summarizer: summarizer.NewFrequencySummarizer()})

	assert.Equal(t, "run-1", ins.RunID)
	require.Len(t, ins.Topics, 3)
	assert.Equal(t, 2, ins.Topics[0].Mentions)
	assert.Equal(t, 1, ins.Topics[2].Mentions, "members without vectors still count as mentions")
	assert.Equal(t, "revenue", ins.Topics[0].Keywords[0])
	assert.NotEmpty(t, ins.Topics[0].Summary)

	assert.Equal(t, "revenue", ins.GlobalKeywords[0].Word)
	assert.Equal(t, 3, ins.GlobalKeywords[0].Count)

	require.Len(t, ins.Layout, 2)
	assert.Equal(t, "Revenue", ins.Layout[0].Topic)
	assert.Equal(t, "Costs", ins.Layout[1].Topic)
	assert.Equal(t, []string{"Notes"}, ins.LayoutUnavailable)
}

func TestBuild_NoVectorsAnywhere(t *testing.T) {
	a := domain.Artifact{Clusters: []domain.ArtifactCluster{
		{ID: 0, Name: "Only", Items: []domain.Chunk{item(0, 0, "plain text", nil)}},
	}}
	ins := Build(a, Options{})
	assert.Empty(t, ins.Layout)
	assert.Equal(t, []string{"Only"}, ins.LayoutUnavailable)
	assert.Empty(t, ins.Overlaps)
}
