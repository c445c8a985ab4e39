// Package config loads and persists the songdl settings record.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName          = "songdl"
	settingsFileName = "settings.toml"
)

var (
	// ErrNotConfigured is returned by Load when no settings file exists yet.
	ErrNotConfigured = errors.New("settings not configured")
	// ErrConfigCorrupt is returned when the settings file exists but cannot be parsed.
	ErrConfigCorrupt = errors.New("settings file is corrupt")
	// ErrInvalidDestination is returned when the destination folder is not a directory.
	ErrInvalidDestination = errors.New("invalid destination folder")
)

// Settings is the persisted record that parametrizes every acquisition.
type Settings struct {
	// DestinationFolder is where finished files are moved. Empty means files
	// stay where they were downloaded.
	DestinationFolder string  `koanf:"gta_music_folder"`
	AudioQuality      Quality `koanf:"audio_quality"`
	// GameConvention uppercases the artist tag for the GTA custom radio.
	GameConvention bool `koanf:"gta_mode"`

	Engine EngineConfig `koanf:"engine"`
	Log    LogConfig    `koanf:"log"`
}

// EngineConfig locates the external download and transcoding engines.
type EngineConfig struct {
	YtDlp   string `koanf:"ytdlp"`    // yt-dlp binary (default: "yt-dlp")
	FFmpeg  string `koanf:"ffmpeg"`   // ffmpeg binary (default: "ffmpeg")
	WorkDir string `koanf:"work_dir"` // download location (default: cwd)
}

// LogConfig holds logging options.
type LogConfig struct {
	Level  string `koanf:"level"`  // "debug", "info", "warn", "error"
	Format string `koanf:"format"` // "text" or "json"
}

// Defaults returns a settings record with every optional key at its default.
func Defaults() *Settings {
	return &Settings{
		AudioQuality:   QualityDefault,
		GameConvention: true,
		Engine: EngineConfig{
			YtDlp:  "yt-dlp",
			FFmpeg: "ffmpeg",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the settings file location under the XDG config home.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(appName, settingsFileName))
}

// Load reads the settings file at path.
// Missing keys keep their defaults and unknown keys are ignored. A file that
// exists but does not parse is reported as ErrConfigCorrupt rather than
// replaced with defaults.
func Load(path string) (*Settings, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("stat settings: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigCorrupt, err)
	}

	s := Defaults()
	if err := k.Unmarshal("", s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigCorrupt, err)
	}

	if s.AudioQuality == "" {
		s.AudioQuality = QualityDefault
	}
	if !s.AudioQuality.Valid() {
		return nil, fmt.Errorf("%w: unknown audio_quality %q", ErrConfigCorrupt, s.AudioQuality)
	}

	s.DestinationFolder = expandPath(s.DestinationFolder)
	s.Engine.WorkDir = expandPath(s.Engine.WorkDir)
	if s.Engine.YtDlp == "" {
		s.Engine.YtDlp = "yt-dlp"
	}
	if s.Engine.FFmpeg == "" {
		s.Engine.FFmpeg = "ffmpeg"
	}

	return s, nil
}

// Save writes the settings to path through a temp file and rename, so a
// crash mid-write never clobbers a previously valid record.
func (s *Settings) Save(path string) error {
	data, err := toml.Parser().Marshal(s.toMap())
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return writeFileAtomic(path, data, 0o644)
}

// HasDestination reports whether finished files should be relocated.
func (s *Settings) HasDestination() bool {
	return s.DestinationFolder != ""
}

// DownloadDir returns the directory the download engine writes into.
func (s *Settings) DownloadDir() string {
	if s.Engine.WorkDir == "" {
		return "."
	}
	return s.Engine.WorkDir
}

func (s *Settings) toMap() map[string]any {
	m := map[string]any{
		"audio_quality": string(s.AudioQuality),
		"gta_mode":      s.GameConvention,
	}
	if s.DestinationFolder != "" {
		m["gta_music_folder"] = s.DestinationFolder
	}

	engine := map[string]any{}
	if s.Engine.YtDlp != "" {
		engine["ytdlp"] = s.Engine.YtDlp
	}
	if s.Engine.FFmpeg != "" {
		engine["ffmpeg"] = s.Engine.FFmpeg
	}
	if s.Engine.WorkDir != "" {
		engine["work_dir"] = s.Engine.WorkDir
	}
	if len(engine) > 0 {
		m["engine"] = engine
	}

	logCfg := map[string]any{}
	if s.Log.Level != "" {
		logCfg["level"] = s.Log.Level
	}
	if s.Log.Format != "" {
		logCfg["format"] = s.Log.Format
	}
	if len(logCfg) > 0 {
		m["log"] = logCfg
	}
	return m
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
