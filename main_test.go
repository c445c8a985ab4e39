package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/songdl/internal/config"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigCommand_Flags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	dest := t.TempDir()

	out, err := runCLI(t, "", "--config", path, "config", "--folder", dest, "--quality", "high", "--mode", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved to "+path)

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, dest, s.DestinationFolder)
	assert.Equal(t, config.QualityHigh, s.AudioQuality)
	assert.False(t, s.GameConvention)
}

func TestConfigCommand_FlagKeepsOtherValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	dest := t.TempDir()

	_, err := runCLI(t, "", "--config", path, "config", "--folder", dest, "--mode", "plain")
	require.NoError(t, err)
	_, err = runCLI(t, "", "--config", path, "config", "--quality", "medium")
	require.NoError(t, err)

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, dest, s.DestinationFolder)
	assert.Equal(t, config.QualityMedium, s.AudioQuality)
	assert.False(t, s.GameConvention)
}

func TestConfigCommand_Interactive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	out, err := runCLI(t, "\n\n\n", "--config", path, "config")
	require.NoError(t, err)
	assert.Contains(t, out, config.QuestionDestination)

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Empty(t, s.DestinationFolder)
	assert.Equal(t, config.QualityDefault, s.AudioQuality)
	assert.True(t, s.GameConvention)
}

func TestConfigCommand_InvalidFolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	_, err := runCLI(t, "", "--config", path, "config", "--folder", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to configure settings: invalid destination folder")
	assert.NoFileExists(t, path)
}

func TestAnswersFrom(t *testing.T) {
	assert.Equal(t, config.Answers{}, answersFrom(nil))

	s := config.Defaults()
	s.DestinationFolder = "/music"
	s.AudioQuality = config.QualityHigh
	s.GameConvention = false
	assert.Equal(t, config.Answers{Destination: "/music", Quality: "1", Convention: "2"}, answersFrom(s))
}

func TestChoiceMapping(t *testing.T) {
	assert.Equal(t, "1", qualityChoice("High"))
	assert.Equal(t, "2", qualityChoice("2"))
	assert.Equal(t, "", qualityChoice("default"))
	assert.Equal(t, "2", conventionChoice("plain"))
	assert.Equal(t, "1", conventionChoice("gta"))
}

func TestRenderTable(t *testing.T) {
	got := renderTable([]string{"Title", "Size"}, [][]string{{"Shape of You", "4.0 MB"}, {"Intro"}}, []columnAlignment{alignLeft, alignRight})
	assert.Contains(t, got, "Shape of You")
	assert.Contains(t, got, "4.0 MB")
	assert.NotContains(t, got, "<nil>")
	assert.Empty(t, renderTable(nil, nil, nil))
}

func TestLoadOrCreateSettings_CorruptNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("gta_mode = [unterminated"), 0o644))
	app := newAppContext(&path)

	_, err := app.loadOrCreateSettings(nil, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to load settings '"+path+"': "), err.Error())
	assert.Contains(t, err.Error(), config.ErrConfigCorrupt.Error())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gta_mode = [unterminated", string(data))
}
