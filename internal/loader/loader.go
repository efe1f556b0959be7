// Package loader provides FileLoader implementations that fetch raw document
// text from a local directory, an HTTP origin or an S3 bucket.
//
// Every loader addresses a document as <root>/<lang>/<filename> and reports
// failures as NotFound or Transport categorized errors.
package loader

import (
	"path"
	"strings"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
)

// objectKey joins root, lang and filename into a slash separated key and
// rejects names that escape their language directory.
func objectKey(root, lang, filename string) (string, error) {
	clean := path.Clean("/" + filename)
	if filename == "" || clean == "/" || strings.Contains(filename, "\\") || clean != "/"+strings.TrimPrefix(filename, "/") {
		return "", derrors.NotFound(root, lang, filename).WithContext("reason", "invalid filename")
	}
	if lang == "" || strings.ContainsAny(lang, "/\\") || lang == "." || lang == ".." {
		return "", derrors.NotFound(root, lang, filename).WithContext("reason", "invalid language")
	}
	return path.Join(strings.Trim(root, "/"), lang, clean), nil
}
