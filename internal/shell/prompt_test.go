package shell

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/songdl/internal/config"
)

func TestLinePrompter_Ask(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("/music\r\n2\n"), &out)

	a, err := p.Ask("Folder")
	require.NoError(t, err)
	assert.Equal(t, "/music", a)

	b, err := p.Ask("Quality")
	require.NoError(t, err)
	assert.Equal(t, "2", b)

	assert.Equal(t, "Folder: Quality: ", out.String())
}

func TestLinePrompter_EmptyAnswer(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("\n"), &bytes.Buffer{})

	a, err := p.Ask("Folder")
	require.NoError(t, err)
	assert.Empty(t, a)
}

func TestLinePrompter_EOF(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("last"), &bytes.Buffer{})

	a, err := p.Ask("q")
	require.NoError(t, err)
	assert.Equal(t, "last", a)

	_, err = p.Ask("q")
	assert.True(t, errors.Is(err, ErrAborted))
}

func TestLinePrompter_Chooser(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("2\n"), &out)

	got, err := p.Chooser()(twoSongs)
	require.NoError(t, err)
	assert.Equal(t, "2", got)
	assert.Equal(t, " 1. Bohemian Rhapsody - Queen\n 2. Under Pressure - Queen, David Bowie\nPick a song (1-2): ", out.String())
}

func TestLinePrompter_CreatesSettings(t *testing.T) {
	dest := t.TempDir()
	p := NewLinePrompter(strings.NewReader(dest+"\n1\n2\n"), &bytes.Buffer{})

	s, err := config.CreateInteractively(nil, p)
	require.NoError(t, err)
	assert.Equal(t, dest, s.DestinationFolder)
	assert.Equal(t, config.QualityHigh, s.AudioQuality)
	assert.False(t, s.GameConvention)
}
