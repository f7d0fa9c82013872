// Package watcher reruns work when documents in a directory change.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"docexplore/internal/logger"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher collapses bursts of file events into single change notifications.
type Watcher struct {
	extensions []string
	debounce   time.Duration
	logger     *log.Logger
}

// New creates a watcher for files with the given extensions.
func New(extensions []string, debounce time.Duration, l *log.Logger) *Watcher {
	if len(extensions) == 0 {
		extensions = []string{".pdf", ".txt", ".md", ".docx"}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{extensions: extensions, debounce: debounce, logger: logger.OrDiscard(l)}
}

// Run watches dir and its subdirectories until ctx is done. onChange runs once per quiet period after
// a relevant create, write, remove or rename, never concurrently with itself.
// An error from onChange is logged and watching continues.
func (w *Watcher) Run(ctx context.Context, dir string, onChange func(context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := addTree(fw, dir); err != nil {
		return err
	}
	w.logger.Info("watching", "dir", dir, "extensions", w.extensions)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := addTree(fw, event.Name); err != nil {
					w.logger.Warn("watch subdirectory", "dir", event.Name, "err", err)
				}
				timer.Reset(w.debounce)
				continue
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		case <-timer.C:
			if err := onChange(ctx); err != nil {
				w.logger.Error("rebuild failed", "err", err)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// addTree registers root and every directory below it; fsnotify watches are
// not recursive.
func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fw.Add(path)
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
