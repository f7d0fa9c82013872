// Package aggregate assembles clustered, named chunks into the document
// artifact handed to the explorer.
package aggregate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"docexplore/internal/domain"
)

// Meta is the document-level metadata of an artifact.
type Meta struct {
	Title         string
	Description   string
	Similarity    float64
	CharsPerPixel int
}

// FallbackName labels a cluster that has no name.
func FallbackName(id int) string {
	return fmt.Sprintf("Cluster %d", id)
}

// Build groups chunks by cluster. Clusters appear in the order they are first
// met and keep their chunks in input order.
func Build(meta Meta, chunks []domain.Chunk, names map[int]string) (domain.Artifact, error) {
	if len(chunks) == 0 {
		return domain.Artifact{}, domain.ErrEmptyArtifact
	}
	index := map[int]int{}
	var clusters []domain.ArtifactCluster
	for _, ch := range chunks {
		id, ok := ch.ClusterID()
		if !ok {
			return domain.Artifact{}, fmt.Errorf("%w: chunk %d", domain.ErrUnclustered, ch.ID)
		}
		pos, seen := index[id]
		if !seen {
			name, ok := names[id]
			if !ok || name == "" {
				name = FallbackName(id)
			}
			pos = len(clusters)
			index[id] = pos
			clusters = append(clusters, domain.ArtifactCluster{ID: id, Name: name})
		}
		clusters[pos].Items = append(clusters[pos].Items, ch)
	}
	return domain.Artifact{
		Title:         meta.Title,
		Description:   meta.Description,
		Similarity:    meta.Similarity,
		CharsPerPixel: meta.CharsPerPixel,
		Clusters:      clusters,
	}, nil
}

// Write stores the artifact as indented JSON.
func Write(path string, a domain.Artifact) error {
	return WriteJSON(path, a)
}

// Read loads an artifact written by Write.
func Read(path string) (domain.Artifact, error) {
	var a domain.Artifact
	data, err := os.ReadFile(path)
	if err != nil {
		return a, err
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return a, fmt.Errorf("decode %s: %w", path, err)
	}
	return a, nil
}

// WriteJSON writes v as indented JSON, creating parent directories.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Chunks flattens the artifact back into its chunks, cluster by cluster.
func Chunks(a domain.Artifact) []domain.Chunk {
	var out []domain.Chunk
	for _, c := range a.Clusters {
		out = append(out, c.Items...)
	}
	return out
}
