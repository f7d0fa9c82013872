// Package logger builds the structured logger shared by the pipeline stages.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	Debug  bool
	JSON   bool
	Writer io.Writer
}

// New returns a logger writing to stderr unless another writer is given.
func New(opts Options) *log.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level := log.InfoLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	formatter := log.TextFormatter
	if opts.JSON {
		formatter = log.JSONFormatter
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Formatter:       formatter,
	})
}

// Discard returns a logger that drops everything. Components fall back to it
// when no logger is injected.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
