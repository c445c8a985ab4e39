// Package catalog searches the YouTube Music catalog for songs and resolves
// a user's pick from the ranked results.
package catalog

import (
	"errors"
	"strings"
)

// PageSize is the maximum number of candidates returned by a search.
const PageSize = 10

var (
	// ErrCatalogUnavailable is returned when the catalog service cannot be
	// reached or answers with something that is not a search result.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrInvalidSelection is returned for an out-of-range or non-numeric pick.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrEmptyQuery is returned when the song title is blank.
	ErrEmptyQuery = errors.New("song title is required")
)

// Query is a single search request.
type Query struct {
	Title  string
	Artist string // optional
}

// String returns the composite query sent to the catalog: "<title> - <artist>"
// when an artist is given, otherwise just the title.
func (q Query) String() string {
	title := strings.TrimSpace(q.Title)
	artist := strings.TrimSpace(q.Artist)
	if artist == "" {
		return title
	}
	return title + " - " + artist
}

// Candidate is one ranked search result.
type Candidate struct {
	Title    string
	Artists  []string // catalog order, may be empty
	SourceID string   // YouTube video id
}

// JoinedArtists returns the artist names joined with ", " in catalog order.
func (c Candidate) JoinedArtists() string {
	return strings.Join(c.Artists, ", ")
}

// Display returns the "<title> - <artists>" line shown in result lists.
func (c Candidate) Display() string {
	return c.Title + " - " + c.JoinedArtists()
}
