// Package download fetches a candidate's audio track with yt-dlp.
package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/llehouerou/songdl/internal/catalog"
	"github.com/llehouerou/songdl/internal/config"
	"github.com/llehouerou/songdl/internal/deps"
	"github.com/llehouerou/songdl/internal/rename"
)

// AudioFormat is the container every download is transcoded to.
const AudioFormat = "m4a"

const sourceURLPrefix = "https://youtube.com/watch?v="

var (
	// ErrDownloadFailed is returned when the engine could not produce the file.
	ErrDownloadFailed = errors.New("download failed")
	// ErrDependencyMissing is returned by New when yt-dlp or ffmpeg is absent.
	ErrDependencyMissing = deps.ErrDependencyMissing
)

// Options configures an Executor.
type Options struct {
	YtDlp   string // yt-dlp binary name or path
	FFmpeg  string // ffmpeg binary name or path
	WorkDir string // directory downloads are written to
	Logger  *slog.Logger
}

// Executor runs yt-dlp for one candidate at a time.
type Executor struct {
	ytdlp   string
	ffmpeg  string
	workDir string
	logger  *slog.Logger
}

// New resolves the engine binaries. A missing binary is reported here, once,
// rather than on every download.
func New(opts Options) (*Executor, error) {
	if opts.YtDlp == "" {
		opts.YtDlp = "yt-dlp"
	}
	if opts.FFmpeg == "" {
		opts.FFmpeg = "ffmpeg"
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	statuses, err := deps.Require([]deps.Requirement{
		{Name: "yt-dlp", Command: opts.YtDlp, Description: "downloads and extracts audio"},
		{Name: "FFmpeg", Command: opts.FFmpeg, Description: "transcodes audio to m4a"},
	})
	if err != nil {
		return nil, err
	}

	return &Executor{
		ytdlp:   statuses[0].Path,
		ffmpeg:  statuses[1].Path,
		workDir: opts.WorkDir,
		logger:  opts.Logger,
	}, nil
}

// NewFromSettings builds an Executor from the engine section of s.
func NewFromSettings(s config.Settings, logger *slog.Logger) (*Executor, error) {
	return New(Options{
		YtDlp:   s.Engine.YtDlp,
		FFmpeg:  s.Engine.FFmpeg,
		WorkDir: s.DownloadDir(),
		Logger:  logger,
	})
}

// SourceURL returns the locator yt-dlp fetches for a catalog id.
func SourceURL(sourceID string) string {
	return sourceURLPrefix + sourceID
}

// ExpectedPath returns where the download of cand lands in the work dir.
func (e *Executor) ExpectedPath(cand catalog.Candidate) string {
	name := rename.Filename(cand.Title, cand.JoinedArtists())
	return filepath.Join(e.workDir, name+"."+AudioFormat)
}

// Download fetches cand's audio as m4a using the quality preset and returns
// the path of the produced file. There is no retry.
func (e *Executor) Download(ctx context.Context, cand catalog.Candidate, quality config.Quality) (string, error) {
	if strings.TrimSpace(cand.SourceID) == "" {
		return "", fmt.Errorf("%w: candidate has no source id", ErrDownloadFailed)
	}
	if quality == "" {
		quality = config.QualityDefault
	}
	if err := os.MkdirAll(e.workDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create work dir: %v", ErrDownloadFailed, err)
	}

	args := e.args(cand, quality)
	e.logger.Debug("running yt-dlp", "source_id", cand.SourceID, "args", args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.ytdlp, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		cause := lastLine(stderr.String())
		if cause == "" {
			cause = err.Error()
		}
		return "", fmt.Errorf("%w: %s", ErrDownloadFailed, cause)
	}

	path := lastLine(stdout.String())
	if path == "" {
		path = e.ExpectedPath(cand)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: output file missing: %v", ErrDownloadFailed, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: output %s is a directory", ErrDownloadFailed, path)
	}
	return path, nil
}

func (e *Executor) args(cand catalog.Candidate, quality config.Quality) []string {
	name := rename.Filename(cand.Title, cand.JoinedArtists())
	// yt-dlp expands %(field)s in the template; a literal % must be doubled.
	// The work dir goes through --paths, which is not a template.
	template := strings.ReplaceAll(name, "%", "%%") + ".%(ext)s"
	return []string{
		"--ignore-config",
		"--format", string(quality),
		"--extract-audio",
		"--audio-format", AudioFormat,
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"--ffmpeg-location", e.ffmpeg,
		"--print", "after_move:filepath",
		"--paths", "home:" + e.workDir,
		"--output", template,
		SourceURL(cand.SourceID),
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
