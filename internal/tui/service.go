// Package tui implements the interactive review flow: fetch, estimate,
// confirm, run and read the report, as a bubbletea program.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/repolens/repolens/internal/app"
	"github.com/repolens/repolens/internal/logging"
)

// Run starts the interactive review session and blocks until it exits.
// The cloned repository is always cleaned up, whether the session finished
// or was quit part-way.
func Run(ctx context.Context, application *app.App, options Options) error {
	model := NewModel(ctx, application, options)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		if m.snapshot != nil {
			if cleanupErr := application.Repo.Cleanup(m.snapshot.LocalPath); cleanupErr != nil {
				logging.Warn("cleanup failed", "path", m.snapshot.LocalPath, "error", cleanupErr)
			}
		}
	}

	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
