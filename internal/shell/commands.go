package shell

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/songdl/internal/catalog"
	"github.com/llehouerou/songdl/internal/config"
	"github.com/llehouerou/songdl/internal/notify"
	"github.com/llehouerou/songdl/internal/pipeline"
)

// searchCmd runs the catalog search off the UI loop.
func searchCmd(ctx context.Context, p *pipeline.Pipeline, q catalog.Query) tea.Cmd {
	return func() tea.Msg {
		cands, err := p.Search(ctx, q)
		return SearchResultMsg{Candidates: cands, Err: err}
	}
}

// fetchCmd runs download, tag and place for cand. Settings are passed by
// value so the running task never sees a later change.
func fetchCmd(ctx context.Context, p *pipeline.Pipeline, s config.Settings, cand catalog.Candidate) tea.Cmd {
	return func() tea.Msg {
		res, err := p.Fetch(ctx, s, cand)
		return FetchResultMsg{Result: res, Err: err}
	}
}

// notifyCmd sends a desktop notification; delivery errors are ignored.
func notifyCmd(n notify.Notifier, notif notify.Notification) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		_, _ = n.Notify(notif)
		return nil
	}
}
