package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Docx pulls paragraph text out of word/document.xml.
type Docx struct{}

func (Docx) SupportedExtensions() []string { return []string{".docx"} }

func (Docx) Extract(_ context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		return parseDocumentXML(content)
	}
	return "", nil
}

type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("parse document.xml: %w", err)
	}
	var b strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, t := range r.Text {
				b.WriteString(t.Content)
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}
