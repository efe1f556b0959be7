package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
)

func writeDoc(t *testing.T, dir, rel, body string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
}

func TestFSLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "assets/docs/en/guide/intro.md", "# Intro")

	l := NewFSLoader(dir)
	body, err := l.Load(context.Background(), "assets/docs", "en", "guide/intro.md")
	require.NoError(t, err)
	require.Equal(t, "# Intro", body)
}

func TestFSLoader_MissingIsNotFound(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "docs/en/guide/intro.md", "# Intro")
	l := NewFSLoader(dir)

	for _, name := range []string{"missing.md", "guide", "../de/x.md", ""} {
		_, err := l.Load(context.Background(), "docs", "en", name)
		require.Error(t, err, name)
		require.True(t, derrors.IsCategory(err, derrors.CategoryNotFound), name)
	}
}

func TestFSLoader_CanceledContextIsTransport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFSLoader(t.TempDir()).Load(ctx, "docs", "en", "a.md")
	require.True(t, derrors.IsCategory(err, derrors.CategoryTransport))
}

func TestObjectKey(t *testing.T) {
	key, err := objectKey("/assets/docs/", "en", "guide/intro.md")
	require.NoError(t, err)
	require.Equal(t, "assets/docs/en/guide/intro.md", key)

	key, err = objectKey("", "de", "nav.md")
	require.NoError(t, err)
	require.Equal(t, "de/nav.md", key)

	for _, bad := range []struct{ lang, name string }{
		{"en", "../secret.md"},
		{"en", "a/../../b.md"},
		{"en", `a\b.md`},
		{"..", "a.md"},
		{"", "a.md"},
		{"en/x", "a.md"},
	} {
		_, err := objectKey("docs", bad.lang, bad.name)
		require.Error(t, err, bad)
	}
}
