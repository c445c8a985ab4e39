// Package shell is the interactive front end of songdl: a bubbletea view
// that walks one acquisition cycle at a time.
package shell

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/songdl/internal/catalog"
	"github.com/llehouerou/songdl/internal/config"
	"github.com/llehouerou/songdl/internal/notify"
	"github.com/llehouerou/songdl/internal/pipeline"
)

// Model is the Bubble Tea model for the acquisition view.
type Model struct {
	ctx      context.Context
	pipeline *pipeline.Pipeline
	settings config.Settings
	notifier notify.Notifier

	state       State
	titleInput  textinput.Model
	artistInput textinput.Model
	spinner     spinner.Model
	query       catalog.Query

	candidates []catalog.Candidate
	cursor     int
	selected   *catalog.Candidate
	result     *pipeline.Result

	// Status message
	statusMsg string
	errorMsg  string

	width int
}

// New creates the acquisition view. The settings are fixed for the life of
// the model.
func New(ctx context.Context, p *pipeline.Pipeline, s config.Settings, n notify.Notifier) *Model {
	title := textinput.New()
	title.Placeholder = "Song title..."
	title.CharLimit = 256
	title.Width = 50
	title.Focus()

	artist := textinput.New()
	artist.Placeholder = "Artist (optional)..."
	artist.CharLimit = 256
	artist.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	if n == nil {
		n = notify.Nop()
	}

	return &Model{
		ctx:         ctx,
		pipeline:    p,
		settings:    s,
		notifier:    n,
		state:       StateTitle,
		titleInput:  title,
		artistInput: artist,
		spinner:     sp,
	}
}

// State returns the current state.
func (m *Model) State() State {
	return m.state
}

// Result returns the outcome of the last completed cycle, if any.
func (m *Model) Result() *pipeline.Result {
	return m.result
}

// Reset clears all state and returns to the title prompt.
func (m *Model) Reset() {
	m.state = StateTitle
	m.titleInput.SetValue("")
	m.artistInput.SetValue("")
	m.artistInput.Blur()
	m.titleInput.Focus()
	m.query = catalog.Query{}
	m.candidates = nil
	m.cursor = 0
	m.selected = nil
	m.result = nil
	m.statusMsg = ""
	m.errorMsg = ""
}

// Init initializes the view.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Run starts the view on the terminal and blocks until the user quits.
func Run(ctx context.Context, p *pipeline.Pipeline, s config.Settings, n notify.Notifier) error {
	_, err := tea.NewProgram(New(ctx, p, s, n), tea.WithContext(ctx)).Run()
	return err
}
