package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchCmd clones the repository, scans it and computes the cost estimate
func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		snapshot, err := m.app.Fetch(m.ctx, m.options.RepoURL)
		if err != nil {
			return fetchedMsg{err: err}
		}

		scan, err := m.app.Scan(snapshot)
		if err != nil {
			return fetchedMsg{snapshot: snapshot, err: err}
		}
		if len(scan.Files) == 0 {
			return fetchedMsg{snapshot: snapshot, err: fmt.Errorf("no reviewable files found in %s", snapshot.FullName())}
		}

		return fetchedMsg{
			snapshot: snapshot,
			scan:     scan,
			estimate: m.app.Estimate(scan),
		}
	}
}

// startReviewCmd launches the review run in the background. Stage
// transitions and the final result arrive through the events channel.
func (m Model) startReviewCmd() tea.Cmd {
	go func() {
		result, err := m.app.Review(m.ctx, m.snapshot, m.scan, func(stage string, index, total int) {
			m.events <- stageMsg{name: stage, index: index, total: total}
		})
		if err != nil {
			m.events <- reviewDoneMsg{err: err}
			return
		}

		markdown, err := m.app.Formatter.Format(result, time.Now())
		m.events <- reviewDoneMsg{result: result, markdown: markdown, err: err}
	}()

	return m.waitForEvent()
}

// waitForEvent blocks until the review goroutine publishes the next message
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// writeReport persists the rendered report when an output path was given
func (m *Model) writeReport() {
	if m.options.OutputPath == "" || m.markdown == "" {
		return
	}
	if err := os.WriteFile(m.options.OutputPath, []byte(m.markdown), 0o644); err != nil {
		m.errorMsg = fmt.Sprintf("writing report: %v", err)
		return
	}
	m.reportPath = m.options.OutputPath
}
