package shell

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/songdl/internal/catalog"
	"github.com/llehouerou/songdl/internal/notify"
	"github.com/llehouerou/songdl/internal/pipeline"
)

const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyUp    = "up"
	keyDown  = "down"
	keyQuit  = "ctrl+c"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.titleInput.Width = max(msg.Width-4, 10)
		m.artistInput.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.state.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SearchResultMsg:
		return m.handleSearchResult(msg)

	case FetchResultMsg:
		return m.handleFetchResult(msg)
	}

	return m.updateInput(msg)
}

// handleKey processes keyboard input and routes to state-specific handlers.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyQuit {
		return m, tea.Quit
	}

	switch m.state {
	case StateTitle:
		return m.handleTitleKey(msg)
	case StateArtist:
		return m.handleArtistKey(msg)
	case StateResults:
		return m.handleResultsKey(msg)
	case StateDone:
		return m.handleDoneKey(msg)
	case StateSearching, StateDownloading:
		// No input while a task runs; the cycle cannot be cancelled.
		return m, nil
	}
	return m, nil
}

func (m *Model) handleTitleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return m, tea.Quit
	case keyEnter:
		if strings.TrimSpace(m.titleInput.Value()) == "" {
			m.errorMsg = catalog.ErrEmptyQuery.Error()
			return m, nil
		}
		m.errorMsg = ""
		m.state = StateArtist
		m.titleInput.Blur()
		m.artistInput.Focus()
		return m, nil
	}
	return m.updateInput(msg)
}

func (m *Model) handleArtistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.state = StateTitle
		m.artistInput.Blur()
		m.titleInput.Focus()
		return m, nil
	case keyEnter:
		m.query = catalog.Query{Title: m.titleInput.Value(), Artist: m.artistInput.Value()}
		m.artistInput.Blur()
		m.state = StateSearching
		m.statusMsg = "Searching " + m.query.String() + "..."
		m.errorMsg = ""
		return m, tea.Batch(searchCmd(m.ctx, m.pipeline, m.query), m.spinner.Tick)
	}
	return m.updateInput(msg)
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case keyEsc:
		m.Reset()
		return m, nil
	case keyUp, "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case keyDown, "j":
		if m.cursor < len(m.candidates)-1 {
			m.cursor++
		}
	case keyEnter:
		return m.choose(strconv.Itoa(m.cursor + 1))
	default:
		// Candidates are numbered 1-10; "0" picks the tenth.
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			if key == "0" {
				key = "10"
			}
			return m.choose(key)
		}
	}
	return m, nil
}

func (m *Model) handleDoneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return m, tea.Quit
	case keyEnter, "n":
		m.Reset()
		return m, textinput.Blink
	}
	return m, nil
}

// choose resolves a 1-based pick and starts the download suffix.
func (m *Model) choose(input string) (tea.Model, tea.Cmd) {
	cand, err := m.pipeline.Select(m.candidates, input)
	if err != nil {
		m.errorMsg = pipeline.Message(err)
		return m, nil
	}
	m.selected = &cand
	m.state = StateDownloading
	m.statusMsg = "Downloading " + cand.Display() + "..."
	m.errorMsg = ""
	return m, tea.Batch(fetchCmd(m.ctx, m.pipeline, m.settings, cand), m.spinner.Tick)
}

func (m *Model) handleSearchResult(msg SearchResultMsg) (tea.Model, tea.Cmd) {
	if m.state != StateSearching {
		return m, nil
	}
	m.statusMsg = ""
	if msg.Err != nil {
		m.errorMsg = pipeline.Message(msg.Err)
		m.state = StateArtist
		m.artistInput.Focus()
		return m, nil
	}
	if len(msg.Candidates) == 0 {
		m.statusMsg = "No results for " + m.query.String()
		m.state = StateTitle
		m.titleInput.Focus()
		return m, nil
	}
	m.candidates = msg.Candidates
	m.cursor = 0
	m.state = StateResults
	return m, nil
}

func (m *Model) handleFetchResult(msg FetchResultMsg) (tea.Model, tea.Cmd) {
	if m.state != StateDownloading {
		return m, nil
	}
	m.state = StateDone
	m.statusMsg = ""
	if msg.Err != nil {
		m.errorMsg = pipeline.Message(msg.Err)
		return m, notifyCmd(m.notifier, notify.Failed(m.errorMsg))
	}
	m.result = msg.Result
	res := msg.Result
	return m, notifyCmd(m.notifier, notify.Saved(res.Tag.Title, res.Tag.Artist, res.Path, res.Placed))
}

// updateInput forwards msg to the focused text input.
func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case StateArtist:
		m.artistInput, cmd = m.artistInput.Update(msg)
	case StateSearching, StateResults, StateDownloading, StateDone:
	}
	return m, cmd
}
