// Package route turns ordered router parameters into logical document paths.
package route

import (
	"regexp"
	"strings"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
)

var (
	pathKeyPattern   = regexp.MustCompile(`^path\d*$`)
	trailingExtRegex = regexp.MustCompile(`\.\w+$`)
)

// DocumentExt is appended to a logical path to form the document filename.
const DocumentExt = ".md"

// IndexDocument is the filename used for the empty logical path.
const IndexDocument = "index" + DocumentExt

// Segment is one route parameter in declaration order.
type Segment struct {
	Key   string
	Value string
}

// Segments is an ordered list of route parameters.
type Segments []Segment

// FromParams pairs router keys and values positionally, the way chi exposes
// RouteParams. Keys without a matching value get an empty value.
func FromParams(keys, values []string) Segments {
	segs := make(Segments, 0, len(keys))
	for i, k := range keys {
		var v string
		if i < len(values) {
			v = values[i]
		}
		segs = append(segs, Segment{Key: k, Value: v})
	}
	return segs
}

// IsPathKey reports whether key is `path` optionally followed by digits.
func IsPathKey(key string) bool {
	return pathKeyPattern.MatchString(key)
}

// Assemble joins the values of path keys with "/" in their original order.
// It returns the empty string when no key matches and an InvalidRequest
// error when a matched key carries no value.
func Assemble(segs Segments) (string, error) {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if !IsPathKey(s.Key) {
			continue
		}
		if s.Value == "" {
			return "", derrors.InvalidRequest(s.Key, "path segment has no value")
		}
		parts = append(parts, s.Value)
	}
	return strings.Join(parts, "/"), nil
}

// DocumentFilename strips a trailing extension from the last segment of path
// and appends DocumentExt.
func DocumentFilename(path string) string {
	if path == "" {
		return IndexDocument
	}
	return trailingExtRegex.ReplaceAllString(path, "") + DocumentExt
}
