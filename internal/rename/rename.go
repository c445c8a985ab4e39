// Package rename builds the canonical on-disk name of a downloaded song.
//
// The same name is used as the download engine's output template and as the
// file the tagger and placement steps look for, so it is sanitized exactly
// once, here.
package rename

import (
	"regexp"
	"strings"
)

// Separator joins the title and artist parts of a canonical name.
const Separator = " - "

var (
	// reQuoteMarks matches the quote characters replaced in names:
	// U+0022 (") and U+0027 (')
	reQuoteMarks = regexp.MustCompile(`["']`)
	// rePathSeparators matches characters that would move the file into a
	// sub-directory of the download folder
	rePathSeparators = regexp.MustCompile(`[/\\]`)
)

// Sanitize replaces quote marks and path separators with underscores.
func Sanitize(s string) string {
	s = reQuoteMarks.ReplaceAllString(s, "_")
	s = rePathSeparators.ReplaceAllString(s, "_")
	return s
}

// Filename returns the canonical base name (without extension) for a song:
// "<title> - <artists>" with each part sanitized independently.
func Filename(title, artists string) string {
	return Sanitize(title) + Separator + Sanitize(artists)
}

// Split recovers the sanitized title and artist parts of a canonical name.
// It splits on the last separator, so titles containing " - " survive as
// long as the artist part does not.
func Split(name string) (title, artists string, ok bool) {
	i := strings.LastIndex(name, Separator)
	if i < 0 {
		return "", "", false
	}
	return name[:i], name[i+len(Separator):], true
}
