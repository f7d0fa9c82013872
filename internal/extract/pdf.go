package extract

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDF extracts the plain text layer of a PDF file.
type PDF struct{}

func (PDF) SupportedExtensions() []string { return []string{".pdf"} }

func (PDF) Extract(_ context.Context, path string) (text string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf %s: %v", path, r)
		}
	}()
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
