package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/songdl/internal/catalog"
	"github.com/llehouerou/songdl/internal/pipeline"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted")

// LinePrompter asks questions on plain line-oriented streams.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a prompter reading answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask prints question and returns the next line without its terminator.
// End of input after a partial line returns that line.
func (p *LinePrompter) Ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Chooser prints the numbered candidates and asks for a 1-based pick.
func (p *LinePrompter) Chooser() pipeline.Chooser {
	return func(cands []catalog.Candidate) (string, error) {
		fmt.Fprint(p.out, FormatCandidates(cands))
		return p.Ask(fmt.Sprintf("Pick a song (1-%d)", len(cands)))
	}
}

// FormatCandidates renders the list the way the pick prompt numbers it.
func FormatCandidates(cands []catalog.Candidate) string {
	var b strings.Builder
	for i, c := range cands {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, c.Display())
	}
	return b.String()
}

// TermPrompter asks each question through a one-line bubbletea input.
type TermPrompter struct {
	opts []tea.ProgramOption
}

// NewTermPrompter creates a prompter; opts are passed to every program.
func NewTermPrompter(opts ...tea.ProgramOption) *TermPrompter {
	return &TermPrompter{opts: opts}
}

// Ask runs a prompt for question and returns the submitted value.
func (p *TermPrompter) Ask(question string) (string, error) {
	final, err := tea.NewProgram(newAskModel(question), p.opts...).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(askModel)
	if !ok || m.aborted {
		return "", ErrAborted
	}
	return m.input.Value(), nil
}

type askModel struct {
	question string
	input    textinput.Model
	aborted  bool
	done     bool
}

func newAskModel(question string) askModel {
	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Width = 60
	ti.Focus()
	return askModel{question: question, input: ti}
}

func (m askModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m askModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case keyEnter:
			m.done = true
			return m, tea.Quit
		case keyEsc, keyQuit:
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m askModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return titleStyle.Render(m.question) + "\n" + m.input.View() + "\n" +
		dimStyle.Render("enter: confirm · esc: cancel") + "\n"
}
