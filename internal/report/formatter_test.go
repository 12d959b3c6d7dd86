package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/review"
)

func testResult() *review.RunResult {
	return &review.RunResult{
		ID:       "run-01ABCDEFGHJKMNPQRSTVWXYZ01",
		RunName:  "quiet-river",
		RepoURL:  "https://github.com/acme/widget",
		RepoName: "acme/widget",
		Model:    "gpt-4o",
		Understanding: &review.Understanding{
			Description: "A small web service.",
			ProjectType: "Web Application",
			TechStack:   []string{"Go", "PostgreSQL"},
			KeyFeatures: []string{"REST API"},
			Complexity:  "simple",
		},
		Categories: []review.CategoryResult{
			{
				Category: review.CategorySecurity,
				Status:   review.StageCompleted,
				Summary:  "One serious issue found.",
				Findings: []review.Finding{
					{
						ID:          "find-01ABCDEFGHJKMNPQRSTVWXYZ02",
						Category:    review.CategorySecurity,
						Severity:    review.SeverityCritical,
						Title:       "Hardcoded database password",
						Description: "The production password is committed in config.go.",
						Suggestion:  "Read the password from the environment.",
						File:        "config.go",
						LineStart:   12,
						LineEnd:     12,
					},
				},
			},
			{
				Category: review.CategoryBug,
				Status:   review.StageCompleted,
				Summary:  "No bugs found.",
				Findings: []review.Finding{},
			},
		},
		FilesAnalyzed: 10,
		StartedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Duration:      90 * time.Second,
	}
}

var testTime = time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)

func TestFormat(t *testing.T) {
	markdown, err := NewFormatter().Format(testResult(), testTime)
	require.NoError(t, err)

	assert.Contains(t, markdown, "# Code Review Report")
	assert.Contains(t, markdown, "acme/widget")
	assert.Contains(t, markdown, "gpt-4o")
	assert.Contains(t, markdown, "2025-06-01 12:05:00 UTC")

	// Understanding section
	assert.Contains(t, markdown, "## Project Overview")
	assert.Contains(t, markdown, "A small web service.")
	assert.Contains(t, markdown, "Go, PostgreSQL")

	// Category sections in order with findings
	assert.Contains(t, markdown, "## Security")
	assert.Contains(t, markdown, "### 1. Hardcoded database password")
	assert.Contains(t, markdown, "**Severity:** Critical")
	assert.Contains(t, markdown, "`config.go` (line 12)")
	assert.Contains(t, markdown, "Read the password from the environment.")

	assert.Contains(t, markdown, "## Bugs & Errors")
	assert.Contains(t, markdown, "No findings in this category.")

	// Critical finding drives the verdict
	assert.Contains(t, markdown, "Critical issues were found")

	securityIdx := strings.Index(markdown, "## Security")
	bugIdx := strings.Index(markdown, "## Bugs & Errors")
	assert.Less(t, securityIdx, bugIdx, "sections must follow category order")
}

func TestFormatDeterministic(t *testing.T) {
	formatter := NewFormatter()

	first, err := formatter.Format(testResult(), testTime)
	require.NoError(t, err)
	second, err := formatter.Format(testResult(), testTime)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same input must produce byte-identical output")
}

func TestFormatFailedCategory(t *testing.T) {
	result := testResult()
	result.Categories = append(result.Categories, review.CategoryResult{
		Category:      review.CategoryPerformance,
		Status:        review.StageFailed,
		FailureReason: "request timed out",
	})

	markdown, err := NewFormatter().Format(result, testTime)
	require.NoError(t, err)

	assert.Contains(t, markdown, "## Performance")
	assert.Contains(t, markdown, "request timed out")
	assert.Contains(t, markdown, "The Performance stage failed")
}

func TestFormatSkippedCategory(t *testing.T) {
	result := testResult()
	result.Incomplete = true
	result.Categories = append(result.Categories, review.CategoryResult{
		Category: review.CategoryQuality,
		Status:   review.StageSkipped,
	})

	markdown, err := NewFormatter().Format(result, testTime)
	require.NoError(t, err)

	assert.Contains(t, markdown, "run was interrupted")
	assert.Contains(t, markdown, "skipped because the run was interrupted")
}

func TestFormatUnknownCategory(t *testing.T) {
	result := testResult()
	result.Categories = append(result.Categories, review.CategoryResult{
		Category: review.Category("style"),
		Status:   review.StageCompleted,
	})

	_, err := NewFormatter().Format(result, testTime)
	require.Error(t, err)

	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestFormatClosingNotes(t *testing.T) {
	result := testResult()
	result.FilesExcluded = 3
	result.RunWarnings = []string{"big.go excluded: repository content exceeds the context budget"}

	markdown, err := NewFormatter().Format(result, testTime)
	require.NoError(t, err)

	assert.Contains(t, markdown, "## Notes")
	assert.Contains(t, markdown, "3 files were excluded")
	assert.Contains(t, markdown, "big.go excluded")
}

func TestFormatNoUnderstanding(t *testing.T) {
	result := testResult()
	result.Understanding = nil

	markdown, err := NewFormatter().Format(result, testTime)
	require.NoError(t, err)

	assert.NotContains(t, markdown, "## Project Overview")
}

func TestVerdict(t *testing.T) {
	assert.Contains(t, verdict(map[review.Severity]int{review.SeverityCritical: 1}), "Critical")
	assert.Contains(t, verdict(map[review.Severity]int{review.SeverityHigh: 2}), "High-severity")
	assert.Contains(t, verdict(map[review.Severity]int{review.SeverityMedium: 1}), "deserve attention")
	assert.Contains(t, verdict(map[review.Severity]int{}), "good shape")
}
