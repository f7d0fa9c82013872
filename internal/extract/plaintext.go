package extract

import (
	"context"
	"os"
)

// PlainText reads UTF-8 text files as they are.
type PlainText struct{}

func (PlainText) SupportedExtensions() []string { return []string{".txt", ".md"} }

func (PlainText) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
