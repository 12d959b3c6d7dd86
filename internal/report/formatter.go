// Package report renders a finished review run as a markdown document.
// Formatting is deterministic: the same RunResult and timestamp always
// produce byte-identical output.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/repolens/repolens/internal/review"
)

// FormatError indicates the run result could not be rendered. Unlike stage
// failures it aborts the run, since there is nothing left to show the user.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "formatting report: " + e.Reason
}

// Formatter renders RunResults as markdown
type Formatter struct{}

// NewFormatter creates a Formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders the complete markdown report. generatedAt is supplied by
// the caller so output stays reproducible.
func (f *Formatter) Format(result *review.RunResult, generatedAt time.Time) (string, error) {
	for _, cr := range result.Categories {
		if !cr.Category.Valid() {
			return "", &FormatError{Reason: fmt.Sprintf("unknown review category %q", cr.Category)}
		}
	}

	var sb strings.Builder

	f.writeHeader(&sb, result, generatedAt)
	f.writeSummary(&sb, result)
	f.writeUnderstanding(&sb, result)
	f.writeCategories(&sb, result)
	f.writeClosingNotes(&sb, result)

	return sb.String(), nil
}

func (f *Formatter) writeHeader(sb *strings.Builder, result *review.RunResult, generatedAt time.Time) {
	sb.WriteString("# Code Review Report\n\n")
	fmt.Fprintf(sb, "**Repository:** %s  \n", result.RepoName)
	fmt.Fprintf(sb, "**URL:** %s  \n", result.RepoURL)
	fmt.Fprintf(sb, "**Run:** %s (`%s`)  \n", result.RunName, result.ID)
	fmt.Fprintf(sb, "**Model:** %s  \n", result.Model)
	fmt.Fprintf(sb, "**Generated:** %s  \n", generatedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(sb, "**Duration:** %s  \n", result.Duration.Round(time.Second))
	fmt.Fprintf(sb, "**Files analyzed:** %d\n\n", result.FilesAnalyzed)

	if result.Incomplete {
		sb.WriteString("> **Note:** this run was interrupted before all review stages finished. The report below is partial.\n\n")
	}
}

func (f *Formatter) writeSummary(sb *strings.Builder, result *review.RunResult) {
	sb.WriteString("## Executive Summary\n\n")

	total := result.TotalFindings()
	fmt.Fprintf(sb, "The review produced **%d finding%s** across %d categories.\n\n",
		total, plural(total), len(result.Categories))

	counts := result.SeverityCounts()
	sb.WriteString("| Severity | Count |\n|----------|-------|\n")
	for _, sev := range review.Severities() {
		fmt.Fprintf(sb, "| %s | %d |\n", titleCase(string(sev)), counts[sev])
	}
	sb.WriteString("\n")

	fmt.Fprintf(sb, "**Assessment:** %s\n\n", verdict(counts))
}

func verdict(counts map[review.Severity]int) string {
	switch {
	case counts[review.SeverityCritical] > 0:
		return "Critical issues were found. Address them before any release."
	case counts[review.SeverityHigh] > 0:
		return "High-severity issues were found and should be addressed soon."
	case counts[review.SeverityMedium] > 0:
		return "No critical or high-severity issues, but several areas deserve attention."
	default:
		return "The codebase is in good shape; only minor observations were made."
	}
}

func (f *Formatter) writeUnderstanding(sb *strings.Builder, result *review.RunResult) {
	u := result.Understanding
	if u == nil {
		return
	}

	sb.WriteString("## Project Overview\n\n")
	sb.WriteString(u.Description + "\n\n")
	fmt.Fprintf(sb, "- **Type:** %s\n", u.ProjectType)
	if len(u.TechStack) > 0 {
		fmt.Fprintf(sb, "- **Tech stack:** %s\n", strings.Join(u.TechStack, ", "))
	}
	if len(u.KeyFeatures) > 0 {
		fmt.Fprintf(sb, "- **Key features:** %s\n", strings.Join(u.KeyFeatures, ", "))
	}
	if u.Complexity != "" {
		fmt.Fprintf(sb, "- **Complexity:** %s\n", u.Complexity)
	}
	sb.WriteString("\n")
}

func (f *Formatter) writeCategories(sb *strings.Builder, result *review.RunResult) {
	for _, cr := range result.Categories {
		fmt.Fprintf(sb, "## %s\n\n", cr.Category.Title())

		switch cr.Status {
		case review.StageFailed:
			fmt.Fprintf(sb, "_This review stage failed and produced no findings: %s_\n\n", cr.FailureReason)
			continue
		case review.StageSkipped:
			sb.WriteString("_This review stage was skipped because the run was interrupted._\n\n")
			continue
		}

		if cr.Summary != "" {
			sb.WriteString(cr.Summary + "\n\n")
		}

		if len(cr.Findings) == 0 {
			sb.WriteString("No findings in this category.\n\n")
			continue
		}

		for i, finding := range cr.Findings {
			f.writeFinding(sb, i+1, finding)
		}
	}
}

func (f *Formatter) writeFinding(sb *strings.Builder, n int, finding review.Finding) {
	fmt.Fprintf(sb, "### %d. %s\n\n", n, finding.Title)
	fmt.Fprintf(sb, "**Severity:** %s", titleCase(string(finding.Severity)))
	if finding.File != "" {
		fmt.Fprintf(sb, " · **Location:** `%s`", finding.File)
		if finding.LineStart > 0 {
			if finding.LineEnd > finding.LineStart {
				fmt.Fprintf(sb, " (lines %d-%d)", finding.LineStart, finding.LineEnd)
			} else {
				fmt.Fprintf(sb, " (line %d)", finding.LineStart)
			}
		}
	}
	sb.WriteString("\n\n")
	sb.WriteString(finding.Description + "\n\n")
	if finding.Suggestion != "" {
		fmt.Fprintf(sb, "**Suggestion:** %s\n\n", finding.Suggestion)
	}
}

func (f *Formatter) writeClosingNotes(sb *strings.Builder, result *review.RunResult) {
	hasNotes := len(result.ScanWarnings) > 0 || len(result.RunWarnings) > 0 ||
		result.FilesExcluded > 0 || len(result.FailedCategories()) > 0

	if !hasNotes {
		return
	}

	sb.WriteString("## Notes\n\n")

	if result.FilesExcluded > 0 {
		fmt.Fprintf(sb, "- %d file%s were excluded because the repository content exceeds the model context budget.\n",
			result.FilesExcluded, plural(result.FilesExcluded))
	}
	for _, c := range result.FailedCategories() {
		fmt.Fprintf(sb, "- The %s stage failed; its findings are missing from this report.\n", c.Title())
	}
	for _, w := range result.ScanWarnings {
		fmt.Fprintf(sb, "- Skipped `%s`: %s\n", w.Path, w.Kind)
	}
	for _, w := range result.RunWarnings {
		fmt.Fprintf(sb, "- %s\n", w)
	}
	sb.WriteString("\n")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
