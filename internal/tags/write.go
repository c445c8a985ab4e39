package tags

import (
	"fmt"

	"github.com/Sorrow446/go-mp4tag"
)

// writeM4ATags writes the title and artist atoms using go-mp4tag.
// The file is modified in place. go-mp4tag merges into the existing atoms
// and skips empty fields, so an empty value deletes its atom instead.
func writeM4ATags(path string, t *Tag) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer mp4.Close()

	tags := &mp4tag.MP4Tags{
		Title:  t.Title,
		Artist: t.Artist,
	}
	var del []string
	if t.Title == "" {
		del = append(del, "title")
	}
	if t.Artist == "" {
		del = append(del, "artist")
	}
	if err := mp4.Write(tags, del); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}
