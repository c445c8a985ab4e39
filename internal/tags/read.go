package tags

import (
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Read reads tag metadata from a music file. A missing title is shown as
// the file name.
func Read(path string) (*Tag, error) {
	t, err := readTags(path)
	if err != nil {
		return nil, err
	}
	if t.Title == "" {
		t.Title = filepath.Base(path)
	}
	return t, nil
}

// readTags returns the atoms as stored, trying dhowden/tag first.
func readTags(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if IsM4A(path) {
			// dhowden/tag can't parse some M4A files (e.g., ffmpeg-created)
			return readM4A(path)
		}
		return nil, err
	}

	return &Tag{
		Path:   path,
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}, nil
}

// readM4A reads M4A atoms using TagLib.
func readM4A(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	return &Tag{
		Path:   path,
		Title:  tags.get(taglib.Title),
		Artist: tags.get(taglib.Artist),
		Album:  tags.get(taglib.Album),
	}, nil
}
