// Package service runs the document-to-topic pipeline end to end.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"docexplore/internal/aggregate"
	"docexplore/internal/chunker"
	"docexplore/internal/cluster"
	"docexplore/internal/config"
	"docexplore/internal/domain"
	"docexplore/internal/embedding"
	"docexplore/internal/embedding/tfidf"
	"docexplore/internal/extract"
	"docexplore/internal/insights"
	"docexplore/internal/logger"
	"docexplore/internal/naming"
	"docexplore/internal/summarizer"
)

// Stage outputs, written in this order.
const (
	TextsFile     = "all_texts.txt"
	ChunksFile    = "chunks.txt"
	EmbedFile     = "embeddings.json"
	ClusteredFile = "clustered_embeddings.json"
	NamesFile     = "cluster_names.json"
	ArtifactFile  = "docexplore.json"
	InsightsFile  = "insights.json"
)

var stageFiles = []string{TextsFile, ChunksFile, EmbedFile, ClusteredFile, NamesFile, ArtifactFile, InsightsFile}

// Result is what a successful run produced.
type Result struct {
	RunID     string
	OutputDir string
	Artifact  domain.Artifact
	Insights  domain.Insights
}

// Pipeline wires the stages together. Each Run builds a fresh embedder so no
// vocabulary leaks between runs.
type Pipeline struct {
	cfg         *config.AppConfig
	chunker     domain.Chunker
	clusterer   domain.Clusterer
	namer       domain.TopicNamer
	summarizer  domain.Summarizer
	extractor   *extract.Registry
	newEmbedder func() domain.Embedder
	logger      *log.Logger
}

func NewPipeline(cfg *config.AppConfig, l *log.Logger) *Pipeline {
	l = logger.OrDiscard(l)
	c := cfg.Clustering
	sel := &cluster.Selector{
		MinClusters:   c.MinClusters,
		MaxClusters:   c.MaxClusters,
		MaxCandidates: c.MaxCandidates,
		Seed:          c.Seed,
		Restarts:      c.Restarts,
		MaxIter:       c.MaxIter,
		Parallel:      c.Parallel,
		Logger:        l,
	}
	return &Pipeline{
		cfg:     cfg,
		chunker: chunker.NewFixedChunker(cfg.Chunker.MaxChars),
		clusterer: &cluster.Clusterer{
			Seed:     c.Seed,
			Restarts: c.Restarts,
			MaxIter:  c.MaxIter,
			Selector: sel,
			Logger:   l,
		},
		namer:      naming.NewNamer(cfg.Naming.MaxKeywords, l),
		summarizer: summarizer.NewFrequencySummarizer(),
		extractor:  extract.NewRegistry(l),
		newEmbedder: func() domain.Embedder {
			return tfidf.NewEmbedder(cfg.Vectorizer.MaxFeatures)
		},
		logger: l,
	}
}

// Extensions lists the input file types RunDir reads.
func (p *Pipeline) Extensions() []string { return p.extractor.Extensions() }

// RunDir extracts every supported document in dir and runs the pipeline.
func (p *Pipeline) RunDir(ctx context.Context, dir string) (*Result, error) {
	texts, err := p.extractor.Dir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", dir, err)
	}
	p.logger.Info("documents extracted", "dir", dir, "documents", len(texts))
	return p.Run(ctx, texts)
}

// Run executes every stage in order. Each stage writes its output before the
// next one starts, and ctx is only checked between stages. Outputs of a
// previous run are removed first so a failed run leaves no artifact behind.
func (p *Pipeline) Run(ctx context.Context, texts []string) (*Result, error) {
	runID := uuid.NewString()
	l := p.logger.With("run", runID)
	dir := p.cfg.Output.Dir
	if err := p.reset(dir); err != nil {
		return nil, err
	}

	joined := extract.Join(texts)
	if err := os.WriteFile(filepath.Join(dir, TextsFile), []byte(joined), 0o644); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	spans := p.chunker.Split(joined)
	var buf bytes.Buffer
	if err := chunker.Encode(&buf, spans); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, ChunksFile), buf.Bytes(), 0o644); err != nil {
		return nil, err
	}
	chunks := chunker.Records(spans)
	l.Info("text chunked", "chunks", len(chunks), "spans", len(spans))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	emb := p.newEmbedder()
	chunks, err := embedding.VectorizeAll(emb, chunks)
	if err != nil {
		return nil, fmt.Errorf("vectorize: %w", err)
	}
	if err := aggregate.WriteJSON(filepath.Join(dir, EmbedFile), domain.ChunkSet{Chunks: chunks}); err != nil {
		return nil, err
	}
	l.Info("chunks vectorized", "embedder", emb.Name(), "dimension", emb.Dimension())

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	chunks, err = p.clusterer.Assign(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	if err := aggregate.WriteJSON(filepath.Join(dir, ClusteredFile), domain.ChunkSet{Chunks: chunks}); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := p.namer.NameAll(chunks)
	if err := aggregate.WriteJSON(filepath.Join(dir, NamesFile), names); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o := p.cfg.Output
	artifact, err := aggregate.Build(aggregate.Meta{
		Title:         o.Title,
		Description:   o.Description,
		Similarity:    o.SimilarityThreshold,
		CharsPerPixel: o.CharsPerPixel,
	}, chunks, names)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	if err := aggregate.Write(filepath.Join(dir, ArtifactFile), artifact); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ins := insights.Build(artifact, insights.Options{
		RunID:            runID,
		KeywordsPerTopic: p.cfg.Insights.KeywordsPerTopic,
		GlobalKeywords:   p.cfg.Insights.GlobalKeywords,
		SummarySentences: p.cfg.Insights.SummarySentences,
		Summarizer:       p.summarizer,
		Logger:           l,
	})
	if err := aggregate.WriteJSON(filepath.Join(dir, InsightsFile), ins); err != nil {
		return nil, err
	}

	l.Info("run complete", "topics", len(artifact.Clusters), "output", dir)
	return &Result{RunID: runID, OutputDir: dir, Artifact: artifact, Insights: ins}, nil
}

func (p *Pipeline) reset(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, name := range stageFiles {
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// LoadInsights reads an insights sidecar.
func LoadInsights(path string) (domain.Insights, error) {
	var ins domain.Insights
	data, err := os.ReadFile(path)
	if err != nil {
		return ins, err
	}
	if err := json.Unmarshal(data, &ins); err != nil {
		return ins, fmt.Errorf("decode %s: %w", path, err)
	}
	return ins, nil
}

// LoadNames reads cluster_names.json.
func LoadNames(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var names map[int]string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return names, nil
}
