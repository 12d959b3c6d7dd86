package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// View renders the current state
func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	switch m.status {
	case StatusFetching:
		return m.viewFetching()
	case StatusConfirming:
		return m.viewConfirming()
	case StatusReviewing:
		return m.viewReviewing()
	case StatusReport:
		return m.viewReport()
	case StatusError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFetching() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("RepoLens") + "\n")
	sb.WriteString(fmt.Sprintf("%s Fetching %s ...\n", m.spinner.View(), m.options.RepoURL))
	sb.WriteString("\n" + m.styles.Subtle.Render("q to quit"))
	return sb.String()
}

func (m Model) viewConfirming() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Cost Estimate") + "\n")

	rows := [][2]string{
		{"Repository", m.snapshot.FullName()},
		{"Files selected", fmt.Sprintf("%d", len(m.scan.Files))},
		{"Model", m.app.Model},
		{"Input tokens", fmt.Sprintf("~%d", m.estimate.InputTokens)},
		{"Output tokens", fmt.Sprintf("~%d", m.estimate.OutputTokens)},
		{"Estimated cost", fmt.Sprintf("$%.4f", m.estimate.TotalCostUSD)},
	}

	var table strings.Builder
	for _, row := range rows {
		table.WriteString(fmt.Sprintf("%-16s %s\n", row[0], m.styles.Subtitle.Render(row[1])))
	}
	sb.WriteString(m.styles.Box.Render(table.String()) + "\n\n")

	if len(m.scan.Warnings) > 0 {
		sb.WriteString(m.styles.Warning.Render(fmt.Sprintf("%d files were skipped during selection", len(m.scan.Warnings))) + "\n\n")
	}

	sb.WriteString(m.styles.Key.Render("y") + "/" + m.styles.Key.Render("enter") + " start review  ")
	sb.WriteString(m.styles.Key.Render("n") + "/" + m.styles.Key.Render("q") + " cancel")
	return sb.String()
}

func (m Model) viewReviewing() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Reviewing "+m.snapshot.FullName()) + "\n")

	stage := m.stageName
	if stage == "" {
		stage = "Preparing"
	}
	sb.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), stage))
	if m.stageTotal > 0 {
		sb.WriteString(m.styles.Subtle.Render(fmt.Sprintf("  (%d/%d)", m.stageIndex+1, m.stageTotal)))
	}
	sb.WriteString("\n\n" + m.styles.Subtle.Render("q to cancel; a partial report will not be shown"))
	return sb.String()
}

func (m Model) viewReport() string {
	var sb strings.Builder
	sb.WriteString(m.viewport.View() + "\n")

	footer := "↑/↓ scroll  q quit"
	if m.reportPath != "" {
		footer = m.styles.Success.Render("Report written to "+m.reportPath) + "  " + footer
	}
	if m.errorMsg != "" {
		footer = m.styles.Warning.Render(m.errorMsg) + "  " + footer
	}
	sb.WriteString(m.styles.Subtle.Render(footer))
	return sb.String()
}

func (m Model) viewError() string {
	msg := wordwrap.String(m.errorMsg, max(40, m.width-4))
	return m.styles.Error.Render("Error") + "\n\n" + msg + "\n\n" + m.styles.Subtle.Render("q to quit")
}
