// Package tags reads and normalizes the title and artist atoms of m4a files.
package tags

import (
	"errors"
	"path/filepath"
	"strings"
)

// File extensions the normalizer accepts.
const (
	ExtM4A = ".m4a"
	ExtMP4 = ".mp4"
)

// ErrTagWriteFailed is returned when tags could not be committed to a file.
var ErrTagWriteFailed = errors.New("tag write failed")

// Tag holds the metadata songdl reads and writes.
type Tag struct {
	Path   string
	Title  string
	Artist string
	Album  string
}

// IsM4A reports whether path has an MPEG-4 audio extension.
func IsM4A(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ExtM4A || ext == ExtMP4
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
