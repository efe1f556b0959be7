// Package metadata extracts key/value pairs embedded in HTML comments of a
// markdown document, e.g.
//
//	<!-- toc: nav.md
//	     ref: v1 -->
//
// Extraction is best effort: malformed comment syntax yields no pairs and
// never an error.
package metadata

import "regexp"

// KeyTOC names the companion table-of-contents document.
const KeyTOC = "toc"

var (
	commentPattern = regexp.MustCompile(`(?s)<!--(.*?)-->`)
	pairPattern    = regexp.MustCompile(`(\w+):\s*([\w\-.]*)`)
)

// Map holds extracted metadata. Later occurrences of a key overwrite earlier ones.
type Map map[string]string

// TOC returns the companion document name, if any.
func (m Map) TOC() (string, bool) {
	v, ok := m[KeyTOC]
	return v, ok
}

// Without returns a copy of m lacking the given keys. It returns nil when
// nothing remains.
func (m Map) Without(keys ...string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Extract scans comment blocks in document order and collects every
// `key: value` pair inside them.
func Extract(source string) Map {
	out := make(Map)
	if source == "" {
		return out
	}
	for _, block := range commentPattern.FindAllStringSubmatch(source, -1) {
		for _, pair := range pairPattern.FindAllStringSubmatch(block[1], -1) {
			out[pair[1]] = pair[2]
		}
	}
	return out
}
