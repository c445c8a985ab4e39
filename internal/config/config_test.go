//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/music", filepath.Join(home, "music")},
		{"absolute path unchanged", "/usr/local/music", "/usr/local/music"},
		{"relative path unchanged", "music/albums", "music/albums"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLoad_NotConfigured(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestLoad_FullRecord(t *testing.T) {
	dest := t.TempDir()
	path := writeSettings(t, `
gta_music_folder = "`+dest+`"
audio_quality = "bestaudio"
gta_mode = false

[engine]
ytdlp = "/opt/yt-dlp"
work_dir = "/tmp/work"

[log]
level = "debug"
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, dest, s.DestinationFolder)
	assert.Equal(t, QualityMedium, s.AudioQuality)
	assert.False(t, s.GameConvention)
	assert.Equal(t, "/opt/yt-dlp", s.Engine.YtDlp)
	assert.Equal(t, "ffmpeg", s.Engine.FFmpeg)
	assert.Equal(t, "/tmp/work", s.DownloadDir())
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "text", s.Log.Format)
}

func TestLoad_MissingKeysUseDefaults(t *testing.T) {
	path := writeSettings(t, "")

	s, err := Load(path)
	require.NoError(t, err)

	assert.False(t, s.HasDestination())
	assert.Equal(t, QualityDefault, s.AudioQuality)
	assert.True(t, s.GameConvention, "gta_mode defaults to true")
	assert.Equal(t, ".", s.DownloadDir())
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	path := writeSettings(t, `
audio_quality = "bestaudio/best"
theme = "dark"

[future]
enabled = true
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, QualityHigh, s.AudioQuality)
}

func TestLoad_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid toml", "gta_mode = \n[[["},
		{"wrong type", `gta_mode = "sometimes"`},
		{"unknown quality literal", `audio_quality = "worstaudio"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettings(t, tt.content)
			_, err := Load(path)
			if !errors.Is(err, ErrConfigCorrupt) {
				t.Fatalf("Load() error = %v, want ErrConfigCorrupt", err)
			}

			// The broken file must be left for the user to fix.
			data, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	s := Defaults()
	s.DestinationFolder = t.TempDir()
	s.AudioQuality = QualityHigh
	s.GameConvention = false
	s.Engine.WorkDir = "/var/tmp/songdl"

	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestSave_OmitsAbsentDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, Defaults().Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "gta_music_folder")
	assert.Contains(t, string(data), "gta_mode")
}

func TestSave_ReplacesExistingWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	first := Defaults()
	require.NoError(t, first.Save(path))

	second := Defaults()
	second.AudioQuality = QualityMedium
	require.NoError(t, second.Save(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, QualityMedium, loaded.AudioQuality)
}

func TestQualityFromChoice(t *testing.T) {
	tests := []struct {
		input string
		want  Quality
	}{
		{"1", QualityHigh},
		{"2", QualityMedium},
		{"", QualityDefault},
		{"3", QualityDefault},
		{"high", QualityDefault},
		{" 1\n", QualityHigh},
	}

	for _, tt := range tests {
		got := QualityFromChoice(tt.input)
		if got != tt.want {
			t.Errorf("QualityFromChoice(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if !got.Valid() {
			t.Errorf("QualityFromChoice(%q) returned undefined preset %q", tt.input, got)
		}
	}
}
