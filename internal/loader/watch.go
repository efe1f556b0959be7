package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is called with the language directory a change happened in.
type ChangeFunc func(lang string)

// Watcher reports document changes below <dir>/<root> per language.
type Watcher struct {
	contentDir string
	watcher    *fsnotify.Watcher
	onChange   ChangeFunc
	debounce   time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher creates a watcher for the content root below dir. Changes are
// debounced per language.
func NewWatcher(dir, root string, debounce time.Duration, onChange ChangeFunc) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	contentDir, err := filepath.Abs(filepath.Join(dir, filepath.FromSlash(root)))
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to resolve content path: %w", err)
	}

	return &Watcher{
		contentDir: contentDir,
		watcher:    w,
		onChange:   onChange,
		debounce:   debounce,
		pending:    make(map[string]*time.Timer),
	}, nil
}

// Start registers every directory below the content root and processes
// events until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	err := filepath.WalkDir(w.contentDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch content directory %s: %w", w.contentDir, err)
	}

	slog.Info("Watching content directory", "dir", w.contentDir)
	go w.loop(ctx)
	return nil
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for _, t := range w.pending {
		t.Stop()
	}
	w.pending = map[string]*time.Timer{}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Content watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		// New subdirectories need their own watch.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.watcher.Add(event.Name)
		}
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	lang, ok := w.languageOf(event.Name)
	if !ok {
		return
	}
	slog.Debug("Content change detected", "file", event.Name, "lang", lang)
	w.schedule(lang)
}

// languageOf returns the first path element below the content root.
func (w *Watcher) languageOf(name string) (string, bool) {
	rel, err := filepath.Rel(w.contentDir, name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	lang, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return lang, lang != ""
}

func (w *Watcher) schedule(lang string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[lang]; ok {
		t.Stop()
	}
	w.pending[lang] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, lang)
		w.mu.Unlock()
		w.onChange(lang)
	})
}
