package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/llehouerou/songdl/internal/catalog"
	"github.com/llehouerou/songdl/internal/config"
	"github.com/llehouerou/songdl/internal/download"
	"github.com/llehouerou/songdl/internal/errmsg"
	"github.com/llehouerou/songdl/internal/history"
	"github.com/llehouerou/songdl/internal/logging"
	"github.com/llehouerou/songdl/internal/pipeline"
)

// appContext carries what the commands share: the settings location, the
// logger and anything that must be closed on exit.
type appContext struct {
	configFlag *string

	logger  *slog.Logger
	closers []io.Closer
}

func newAppContext(configFlag *string) *appContext {
	return &appContext{
		configFlag: configFlag,
		logger:     logging.Discard(),
	}
}

// settingsPath returns the --config value or the XDG default.
func (a *appContext) settingsPath() (string, error) {
	if a.configFlag != nil {
		if path := strings.TrimSpace(*a.configFlag); path != "" {
			return path, nil
		}
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("determine settings path: %w", err)
	}
	return path, nil
}

// loadSettings reads the settings record. A missing record is returned as
// config.ErrNotConfigured.
func (a *appContext) loadSettings() (*config.Settings, string, error) {
	path, err := a.settingsPath()
	if err != nil {
		return nil, "", err
	}
	s, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return s, path, nil
}

// loadOrCreateSettings loads the settings, running first-time setup through
// p when none exist yet. A corrupt record is reported, never replaced.
func (a *appContext) loadOrCreateSettings(p config.Prompter, out io.Writer) (*config.Settings, error) {
	s, path, err := a.loadSettings()
	switch {
	case err == nil:
		return s, nil
	case !errors.Is(err, config.ErrNotConfigured):
		return nil, errors.New(errmsg.FormatWith(errmsg.OpSettingsLoad, path, err))
	}

	fmt.Fprintln(out, "No settings found, starting setup.")
	s, err = config.CreateInteractively(nil, p)
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpSettingsCreate, err))
	}
	if err := s.Save(path); err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpSettingsSave, err))
	}
	fmt.Fprintf(out, "Settings saved to %s\n", path)
	return s, nil
}

// initLogger sets up logging from the settings. When toFile is set, logs go
// to the state file so they never draw over the TUI.
func (a *appContext) initLogger(s *config.Settings, toFile bool) error {
	opts := logging.Options{Level: s.Log.Level, Format: s.Log.Format}
	if toFile {
		path, err := logging.DefaultPath()
		if err != nil {
			return fmt.Errorf("determine log path: %w", err)
		}
		opts.Path = path
	}
	logger, closer, err := logging.New(opts)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger
	a.closers = append(a.closers, closer)
	return nil
}

// newPipeline wires the catalog client, the download engine and the history
// store. History is optional: if it cannot be opened the cycle still runs.
func (a *appContext) newPipeline(s *config.Settings) (*pipeline.Pipeline, error) {
	engine, err := download.NewFromSettings(*s, a.logger)
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{
		Searcher:   catalog.NewClient(),
		Downloader: engine,
		Logger:     a.logger,
	}
	if store, err := a.openHistory(); err != nil {
		a.logger.Warn(errmsg.Format(errmsg.OpHistoryOpen, err))
	} else {
		opts.Recorder = store
	}
	return pipeline.New(opts), nil
}

func (a *appContext) openHistory() (*history.Store, error) {
	path, err := history.DefaultPath()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store)
	return store, nil
}

func (a *appContext) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
