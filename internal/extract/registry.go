// Package extract turns input documents into plain text.
package extract

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"docexplore/internal/chunker"
	"docexplore/internal/domain"
	"docexplore/internal/logger"
)

// Registry picks an Extractor by file extension.
type Registry struct {
	byExt  map[string]domain.Extractor
	Logger *log.Logger
}

// NewRegistry registers the plain text, DOCX and PDF extractors.
func NewRegistry(l *log.Logger) *Registry {
	r := &Registry{byExt: map[string]domain.Extractor{}, Logger: l}
	r.Register(PlainText{})
	r.Register(Docx{})
	r.Register(PDF{})
	return r
}

// Register adds e for every extension it supports, replacing earlier entries.
func (r *Registry) Register(e domain.Extractor) {
	for _, ext := range e.SupportedExtensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// Supports reports whether a file with this path can be extracted.
func (r *Registry) Supports(path string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions lists the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Extract returns the text of one file.
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	e, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("unsupported file type: %s", path)
	}
	return e.Extract(ctx, path)
}

// Dir extracts every supported file under dir, subdirectories included, in
// lexical path order. A file that fails contributes an empty string and a
// warning; an unreadable subdirectory is skipped with a warning.
func (r *Registry) Dir(ctx context.Context, dir string) ([]string, error) {
	l := logger.OrDiscard(r.Logger)
	var texts []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			l.Warn("skipping unreadable path", "path", path, "err", err)
			return nil
		}
		if d.IsDir() || !r.Supports(d.Name()) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		text, err := r.Extract(ctx, path)
		if err != nil {
			l.Warn("extraction failed", "file", path, "err", err)
			text = ""
		}
		l.Debug("extracted", "file", path, "chars", len(text))
		texts = append(texts, text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return texts, nil
}

// Join concatenates document texts with the document boundary marker.
func Join(texts []string) string {
	return strings.Join(texts, chunker.BoundaryMarker)
}
