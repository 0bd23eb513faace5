package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"participativos/models"
)

// DatasetLoader produces the merged dataset. It never fails: load errors
// surface as an empty dataset.
type DatasetLoader interface {
	Load(ctx context.Context) *models.Dataset
}

// loadDataset runs the loader off the event loop.
func loadDataset(ctx context.Context, loader DatasetLoader) tea.Cmd {
	return func() tea.Msg {
		return DatasetLoadedMsg{Dataset: loader.Load(ctx)}
	}
}

// settleSearch fires a searchSettledMsg after d.
func settleSearch(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return searchSettledMsg{seq: seq}
	})
}
