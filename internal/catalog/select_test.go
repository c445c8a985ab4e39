package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCandidates() []Candidate {
	return []Candidate{
		{Title: "Shape of You", Artists: []string{"Ed Sheeran"}, SourceID: "a"},
		{Title: "Shape of You (Acoustic)", Artists: []string{"Ed Sheeran"}, SourceID: "b"},
		{Title: "Shape of You", Artists: nil, SourceID: "c"},
	}
}

func TestSelect_InRange(t *testing.T) {
	cands := sampleCandidates()
	for i := 1; i <= len(cands); i++ {
		got, err := Select(cands, i)
		require.NoError(t, err)
		assert.Equal(t, cands[i-1], got)
	}
}

func TestSelect_OutOfRange(t *testing.T) {
	cands := sampleCandidates()
	for _, index := range []int{0, -1, 4, 100} {
		_, err := Select(cands, index)
		assert.ErrorIs(t, err, ErrInvalidSelection, "index %d", index)
	}

	_, err := Select(nil, 1)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestSelectInput(t *testing.T) {
	cands := sampleCandidates()

	got, err := SelectInput(cands, " 2\n")
	require.NoError(t, err)
	assert.Equal(t, "b", got.SourceID)

	for _, input := range []string{"", "two", "1.5", "0", "9"} {
		_, err := SelectInput(cands, input)
		assert.ErrorIs(t, err, ErrInvalidSelection, "input %q", input)
	}
}

func TestCandidate_JoinedArtists(t *testing.T) {
	tests := []struct {
		artists []string
		want    string
	}{
		{nil, ""},
		{[]string{"Ed Sheeran"}, "Ed Sheeran"},
		{[]string{"Queen", "David Bowie"}, "Queen, David Bowie"},
	}
	for _, tt := range tests {
		c := Candidate{Title: "t", Artists: tt.artists}
		assert.Equal(t, tt.want, c.JoinedArtists())
	}

	c := Candidate{Title: "Under Pressure", Artists: []string{"Queen", "David Bowie"}}
	assert.Equal(t, "Under Pressure - Queen, David Bowie", c.Display())
}
