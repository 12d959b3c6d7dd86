package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles incoming messages and state transitions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		if m.status == StatusReport && m.markdown != "" {
			m.setReportContent()
		}
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchedMsg:
		if msg.err != nil {
			m.snapshot = msg.snapshot
			m.status = StatusError
			m.errorMsg = msg.err.Error()
			return m, nil
		}
		m.snapshot = msg.snapshot
		m.scan = msg.scan
		m.estimate = msg.estimate
		if m.options.SkipPrompt {
			m.status = StatusReviewing
			return m, m.startReviewCmd()
		}
		m.status = StatusConfirming
		return m, nil

	case stageMsg:
		m.stageName = msg.name
		m.stageIndex = msg.index
		m.stageTotal = msg.total
		return m, m.waitForEvent()

	case reviewDoneMsg:
		if msg.err != nil {
			m.status = StatusError
			m.errorMsg = msg.err.Error()
			return m, nil
		}
		m.result = msg.result
		m.markdown = msg.markdown
		m.writeReport()
		m.status = StatusReport
		m.setReportContent()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.cancel()
		return m, tea.Quit

	case "y", "enter":
		if m.status == StatusConfirming {
			m.status = StatusReviewing
			return m, m.startReviewCmd()
		}

	case "n":
		if m.status == StatusConfirming {
			m.cancel()
			return m, tea.Quit
		}
	}

	if m.status == StatusReport {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// setReportContent renders the markdown into the viewport
func (m *Model) setReportContent() {
	rendered := m.markdown
	if m.renderer != nil {
		if out, err := m.renderer.Render(m.markdown); err == nil {
			rendered = out
		}
	}
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
}
