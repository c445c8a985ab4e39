// Package pipeline runs the acquisition cycle: search, select, download,
// tag and place one song.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"

	"github.com/llehouerou/songdl/internal/catalog"
	"github.com/llehouerou/songdl/internal/config"
	"github.com/llehouerou/songdl/internal/errmsg"
	"github.com/llehouerou/songdl/internal/history"
	"github.com/llehouerou/songdl/internal/placement"
	"github.com/llehouerou/songdl/internal/tags"
)

const lockDirName = "songdl/locks"

// ErrCycleInProgress is returned when another process holds the cycle lock
// for the same download directory.
var ErrCycleInProgress = errors.New("another download is in progress")

// Searcher queries the catalog.
type Searcher interface {
	Search(ctx context.Context, q catalog.Query) ([]catalog.Candidate, error)
}

// Downloader fetches a candidate's audio and returns the local path.
type Downloader interface {
	Download(ctx context.Context, cand catalog.Candidate, quality config.Quality) (string, error)
}

// Normalizer writes the canonical title and artist tags.
type Normalizer interface {
	Normalize(path, title, artists string, gameConvention bool) (*tags.Tag, error)
}

// Placer moves a finished file into a destination folder.
type Placer interface {
	Place(src, destDir string) (string, error)
}

// Recorder keeps a history of completed cycles.
type Recorder interface {
	Record(e history.Entry) (history.Entry, error)
}

// NormalizeFunc adapts a function to Normalizer.
type NormalizeFunc func(path, title, artists string, gameConvention bool) (*tags.Tag, error)

// Normalize calls f.
func (f NormalizeFunc) Normalize(path, title, artists string, gameConvention bool) (*tags.Tag, error) {
	return f(path, title, artists, gameConvention)
}

// PlaceFunc adapts a function to Placer.
type PlaceFunc func(src, destDir string) (string, error)

// Place calls f.
func (f PlaceFunc) Place(src, destDir string) (string, error) {
	return f(src, destDir)
}

// Chooser picks a candidate from a non-empty list and returns the user's
// raw answer, a 1-based position.
type Chooser func(cands []catalog.Candidate) (string, error)

// Options wires a Pipeline. Searcher and Downloader are required; the rest
// default to the tags and placement packages, no history and a discarding
// logger.
type Options struct {
	Searcher   Searcher
	Downloader Downloader
	Normalizer Normalizer
	Placer     Placer
	Recorder   Recorder
	Logger     *slog.Logger
	// LockDir holds the per-work-dir cycle locks. Empty means the XDG
	// state directory.
	LockDir    string
}

// Pipeline runs acquisition cycles. It holds no settings of its own; each
// call receives the settings it runs with.
type Pipeline struct {
	searcher   Searcher
	downloader Downloader
	normalizer Normalizer
	placer     Placer
	recorder   Recorder
	logger     *slog.Logger
	lockDir    string
}

// Result describes a song that went through download, tag and place.
type Result struct {
	Candidate catalog.Candidate
	Path      string // final location
	Placed    bool   // false when no destination folder is configured
	Tag       tags.Tag
	SizeBytes int64
}

// Outcome is the end state of a full cycle.
type Outcome struct {
	NoResults bool
	Result    *Result
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		searcher:   opts.Searcher,
		downloader: opts.Downloader,
		normalizer: opts.Normalizer,
		placer:     opts.Placer,
		recorder:   opts.Recorder,
		logger:     opts.Logger,
		lockDir:    opts.LockDir,
	}
	if p.normalizer == nil {
		p.normalizer = NormalizeFunc(tags.Normalize)
	}
	if p.placer == nil {
		p.placer = PlaceFunc(placement.Place)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	return p
}

// Search runs the catalog query. An empty list is a normal result.
func (p *Pipeline) Search(ctx context.Context, q catalog.Query) ([]catalog.Candidate, error) {
	p.logger.Info("searching catalog", "step", StepSearch, "query", q.String())
	cands, err := p.searcher.Search(ctx, q)
	if err != nil {
		return nil, &StepError{Step: StepSearch, Err: err}
	}
	p.logger.Debug("search finished", "step", StepSearch, "results", len(cands))
	return cands, nil
}

// Select resolves the user's answer against the presented list.
func (p *Pipeline) Select(cands []catalog.Candidate, input string) (catalog.Candidate, error) {
	cand, err := catalog.SelectInput(cands, input)
	if err != nil {
		return catalog.Candidate{}, &StepError{Step: StepSelect, Err: err}
	}
	return cand, nil
}

// Fetch downloads cand, normalizes its tags and places it according to s.
// A failure leaves whatever file was produced where it is.
func (p *Pipeline) Fetch(ctx context.Context, s config.Settings, cand catalog.Candidate) (*Result, error) {
	unlock, err := p.lock(s.DownloadDir())
	if err != nil {
		return nil, &StepError{Step: StepDownload, Err: err}
	}
	defer unlock()

	log := p.logger.With("title", cand.Title, "source_id", cand.SourceID)

	log.Info("downloading", "step", StepDownload, "quality", string(s.AudioQuality))
	path, err := p.downloader.Download(ctx, cand, s.AudioQuality)
	if err != nil {
		return nil, &StepError{Step: StepDownload, Err: err}
	}

	log.Info("writing tags", "step", StepTag, "path", path, "game_convention", s.GameConvention)
	tag, err := p.normalizer.Normalize(path, cand.Title, cand.JoinedArtists(), s.GameConvention)
	if err != nil {
		return nil, &StepError{Step: StepTag, Err: err}
	}

	final, err := p.placer.Place(path, s.DestinationFolder)
	if err != nil {
		return nil, &StepError{Step: StepPlace, Err: err}
	}
	placed := s.HasDestination()
	log.Info("song ready", "step", StepPlace, "path", final, "placed", placed)

	res := &Result{
		Candidate: cand,
		Path:      final,
		Placed:    placed,
	}
	if tag != nil {
		res.Tag = *tag
		res.Tag.Path = final
	}
	if info, err := os.Stat(final); err == nil {
		res.SizeBytes = info.Size()
	}

	p.record(res)
	return res, nil
}

// Acquire runs the whole cycle for q. choose is only called when the search
// returned at least one candidate.
func (p *Pipeline) Acquire(ctx context.Context, s config.Settings, q catalog.Query, choose Chooser) (Outcome, error) {
	cands, err := p.Search(ctx, q)
	if err != nil {
		return Outcome{}, err
	}
	if len(cands) == 0 {
		p.logger.Info("no results", "query", q.String())
		return Outcome{NoResults: true}, nil
	}

	input, err := choose(cands)
	if err != nil {
		return Outcome{}, &StepError{Step: StepSelect, Err: err}
	}
	cand, err := p.Select(cands, input)
	if err != nil {
		return Outcome{}, err
	}

	res, err := p.Fetch(ctx, s, cand)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Result: res}, nil
}

func (p *Pipeline) record(res *Result) {
	if p.recorder == nil {
		return
	}
	_, err := p.recorder.Record(history.Entry{
		Title:     res.Candidate.Title,
		Artists:   res.Candidate.JoinedArtists(),
		SourceID:  res.Candidate.SourceID,
		Path:      res.Path,
		Placed:    res.Placed,
		SizeBytes: res.SizeBytes,
	})
	if err != nil {
		p.logger.Warn(errmsg.Format(errmsg.OpHistoryRecord, err), "path", res.Path)
	}
}

// lock takes the per-directory cycle lock without waiting.
func (p *Pipeline) lock(dir string) (func(), error) {
	path, err := p.lockPath(dir)
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrCycleInProgress
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			p.logger.Warn("failed to release cycle lock", "lock", path, "error", err)
		}
	}, nil
}

// lockPath names the lock for dir after a hash of its absolute path, so
// every process downloading into the same directory contends for it.
func (p *Pipeline) lockPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(abs))
	name := hex.EncodeToString(sum[:8]) + ".lock"

	if p.lockDir == "" {
		return xdg.StateFile(filepath.Join(lockDirName, name))
	}
	if err := os.MkdirAll(p.lockDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(p.lockDir, name), nil
}
