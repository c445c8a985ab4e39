package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))
)

// View renders the acquisition view.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("songdl"))
	b.WriteString(dimStyle.Render("  " + m.settingsSummary()))
	b.WriteString("\n\n")

	// Status/error messages (reserve 2 lines always for consistent layout)
	if m.errorMsg != "" {
		errText := "Error: " + m.errorMsg
		if m.width > 4 {
			b.WriteString(errorStyle.Width(m.width - 4).Render(errText))
		} else {
			b.WriteString(errorStyle.Render(errText))
		}
	}
	b.WriteString("\n")
	if m.statusMsg != "" {
		if m.state.IsLoading() {
			b.WriteString(m.spinner.View())
			b.WriteString(" ")
		}
		b.WriteString(statusStyle.Render(m.statusMsg))
	}
	b.WriteString("\n\n")

	switch m.state {
	case StateTitle, StateArtist, StateSearching:
		b.WriteString(m.renderInputs())
	case StateResults:
		b.WriteString(m.renderResults())
	case StateDownloading:
		if m.selected != nil {
			b.WriteString(selectedStyle.Render(m.selected.Display()))
		}
	case StateDone:
		b.WriteString(m.renderDone())
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.helpText()))
	return b.String()
}

func (m *Model) settingsSummary() string {
	dest := "no destination, files stay in " + m.settings.DownloadDir()
	if m.settings.HasDestination() {
		dest = "→ " + m.settings.DestinationFolder
	}
	mode := "plain tags"
	if m.settings.GameConvention {
		mode = "GTA tags"
	}
	return fmt.Sprintf("%s · %s quality · %s", dest, m.settings.AudioQuality.Label(), mode)
}

func (m *Model) renderInputs() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("Song title:"))
	b.WriteString("\n")
	b.WriteString(m.titleInput.View())
	if m.state == StateTitle {
		return b.String()
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Artist:"))
	b.WriteString("\n")
	b.WriteString(m.artistInput.View())
	return b.String()
}

// renderResults renders the numbered candidate list.
func (m *Model) renderResults() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("Select a song:"))
	b.WriteString("\n\n")

	for i, c := range m.candidates {
		line := fmt.Sprintf("%2d. %s", i+1, c.Display())
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "))
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString("  ")
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m *Model) renderDone() string {
	if m.result == nil {
		return dimStyle.Render("Nothing was saved.")
	}
	res := m.result

	var b strings.Builder
	b.WriteString(successStyle.Render("✓ Saved"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  Title:  %s\n", res.Tag.Title)
	fmt.Fprintf(&b, "  Artist: %s\n", res.Tag.Artist)
	fmt.Fprintf(&b, "  File:   %s", res.Path)
	if res.SizeBytes > 0 {
		b.WriteString(dimStyle.Render(" (" + humanize.Bytes(uint64(res.SizeBytes)) + ")"))
	}
	if !res.Placed {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  No destination folder configured; the file was left where it was downloaded."))
	}
	return b.String()
}

func (m *Model) helpText() string {
	switch m.state {
	case StateTitle:
		return "enter: next · esc: quit"
	case StateArtist:
		return "enter: search · esc: back"
	case StateResults:
		return "↑/↓: move · enter or 1-9/0: download · esc: new search"
	case StateSearching, StateDownloading:
		return "ctrl+c: quit"
	case StateDone:
		return "enter: new search · q: quit"
	}
	return ""
}
