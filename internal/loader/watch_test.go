package loader

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsLanguageOfChangedFile(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "docs/en/guide.md", "v1")
	writeDoc(t, dir, "docs/de/guide.md", "v1")

	var mu sync.Mutex
	var changed []string
	w, err := NewWatcher(dir, "docs", 50*time.Millisecond, func(lang string) {
		mu.Lock()
		changed = append(changed, lang)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "de", "guide.md"), []byte("v2"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "de", "guide.md"), []byte("v3"), 0o600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		if len(changed) == 0 {
			return false
		}
		for _, l := range changed {
			if l != "de" {
				return false
			}
		}
		return true
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_LanguageOf(t *testing.T) {
	w := &Watcher{contentDir: filepath.FromSlash("/srv/docs")}

	lang, ok := w.languageOf(filepath.FromSlash("/srv/docs/en/guide/intro.md"))
	require.True(t, ok)
	require.Equal(t, "en", lang)

	_, ok = w.languageOf(filepath.FromSlash("/srv/docs"))
	require.False(t, ok)

	_, ok = w.languageOf(filepath.FromSlash("/srv/other/en/a.md"))
	require.False(t, ok)
}
