package tags

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// CanonicalArtist returns the artist string stored in the file. The game
// convention stores it uppercased, otherwise it is kept verbatim.
func CanonicalArtist(artists string, gameConvention bool) string {
	if gameConvention {
		return upper.String(artists)
	}
	return artists
}

// Normalize sets the title atom to title and the artist atom to the
// canonical form of artists. Both atoms are written to a copy of the file,
// read back, and only then renamed over the original, so either both tags
// land or the file is left untouched. The tags read back are returned.
func Normalize(path, title, artists string, gameConvention bool) (*Tag, error) {
	if !IsM4A(path) {
		return nil, fmt.Errorf("%w: %s is not an m4a file", ErrTagWriteFailed, filepath.Base(path))
	}

	want := &Tag{
		Title:  title,
		Artist: CanonicalArtist(artists, gameConvention),
	}

	tmp, err := copyToTemp(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTagWriteFailed, err)
	}
	defer os.Remove(tmp) //nolint:errcheck // no-op once renamed

	if err := writeM4ATags(tmp, want); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTagWriteFailed, err)
	}

	got, err := readTags(tmp)
	if err != nil {
		return nil, fmt.Errorf("%w: read back: %v", ErrTagWriteFailed, err)
	}
	if got.Title != want.Title || got.Artist != want.Artist {
		return nil, fmt.Errorf("%w: read back title=%q artist=%q", ErrTagWriteFailed, got.Title, got.Artist)
	}

	if err := os.Rename(tmp, path); err != nil {
		return nil, fmt.Errorf("%w: replace original: %v", ErrTagWriteFailed, err)
	}

	got.Path = path
	return got, nil
}

// copyToTemp copies path to a hidden sibling that keeps the extension, since
// both the writer and the reader pick the container from it.
func copyToTemp(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	dst, err := os.CreateTemp(filepath.Dir(path), "."+stem+".*"+ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	if err := os.Chmod(dst.Name(), info.Mode().Perm()); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}
