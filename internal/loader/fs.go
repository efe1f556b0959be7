package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
)

// FSLoader reads documents below a base directory.
type FSLoader struct {
	fsys fs.FS
	base string
}

// NewFSLoader creates a loader rooted at dir.
func NewFSLoader(dir string) *FSLoader {
	return &FSLoader{fsys: os.DirFS(dir), base: dir}
}

// Dir returns the base directory.
func (l *FSLoader) Dir() string { return l.base }

// Load reads <dir>/<root>/<lang>/<filename>.
func (l *FSLoader) Load(ctx context.Context, root, lang, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", derrors.Transport(root, lang, filename, err)
	}
	key, err := objectKey(root, lang, filename)
	if err != nil {
		return "", err
	}

	data, err := fs.ReadFile(l.fsys, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || isDirError(l.base, key) {
			return "", derrors.NotFound(root, lang, filename)
		}
		return "", derrors.Transport(root, lang, filename, err)
	}
	return string(data), nil
}

func isDirError(base, key string) bool {
	st, err := os.Stat(filepath.Join(base, filepath.FromSlash(key)))
	return err == nil && st.IsDir()
}
