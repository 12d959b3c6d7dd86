// Package review orchestrates the ordered sequence of LLM review stages and
// owns the finding data model.
package review

import (
	"strings"
	"time"

	"github.com/repolens/repolens/internal/scanner"
)

// Category is one of the fixed review dimensions
type Category string

const (
	// CategorySecurity covers vulnerabilities and unsafe handling of input
	CategorySecurity Category = "security"
	// CategoryBug covers logic errors and potential crashes
	CategoryBug Category = "bug"
	// CategoryPerformance covers inefficiency and scaling hazards
	CategoryPerformance Category = "performance"
	// CategoryQuality covers maintainability and code health
	CategoryQuality Category = "quality"
	// CategoryDocumentation covers missing or misleading documentation
	CategoryDocumentation Category = "documentation"
	// CategoryArchitecture covers structural and design concerns
	CategoryArchitecture Category = "architecture"
	// CategorySuggestion covers improvement ideas built on earlier findings
	CategorySuggestion Category = "suggestion"
)

// Categories returns the review categories in their fixed processing order.
// The report renders its sections in this same order.
func Categories() []Category {
	return []Category{
		CategorySecurity,
		CategoryBug,
		CategoryPerformance,
		CategoryQuality,
		CategoryDocumentation,
		CategoryArchitecture,
		CategorySuggestion,
	}
}

// Title returns the human-readable section title for a category
func (c Category) Title() string {
	switch c {
	case CategorySecurity:
		return "Security"
	case CategoryBug:
		return "Bugs & Errors"
	case CategoryPerformance:
		return "Performance"
	case CategoryQuality:
		return "Code Quality"
	case CategoryDocumentation:
		return "Documentation"
	case CategoryArchitecture:
		return "Architecture"
	case CategorySuggestion:
		return "Suggestions"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategorySecurity, CategoryBug, CategoryPerformance, CategoryQuality,
		CategoryDocumentation, CategoryArchitecture, CategorySuggestion:
		return true
	}
	return false
}

// Severity grades the impact of a finding
type Severity string

const (
	// SeverityCritical marks findings requiring immediate attention
	SeverityCritical Severity = "critical"
	// SeverityHigh marks serious findings
	SeverityHigh Severity = "high"
	// SeverityMedium marks moderate findings
	SeverityMedium Severity = "medium"
	// SeverityLow marks minor findings
	SeverityLow Severity = "low"
	// SeverityInfo marks observations with no direct risk
	SeverityInfo Severity = "info"
)

// Severities returns the severities in descending order of impact
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// MapSeverity maps an arbitrary LLM severity string to a known Severity
func MapSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	case "low":
		return SeverityLow
	case "info", "informational":
		return SeverityInfo
	default:
		return SeverityMedium
	}
}

// Finding is a single reported issue or observation. Findings are never
// mutated after creation.
type Finding struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion,omitempty"`
	File        string   `json:"file,omitempty"`
	LineStart   int      `json:"line_start,omitempty"`
	LineEnd     int      `json:"line_end,omitempty"`
}

// StageStatus describes how a category stage ended
type StageStatus string

const (
	// StageCompleted indicates the stage produced a parsed response
	StageCompleted StageStatus = "completed"
	// StageFailed indicates the LLM call failed after exhausting retries
	StageFailed StageStatus = "failed"
	// StageSkipped indicates the run was cancelled before the stage ran
	StageSkipped StageStatus = "skipped"
)

// CategoryResult holds the outcome of one category stage
type CategoryResult struct {
	Category      Category    `json:"category"`
	Status        StageStatus `json:"status"`
	Summary       string      `json:"summary,omitempty"`
	Findings      []Finding   `json:"findings"`
	FailureReason string      `json:"failure_reason,omitempty"`
}

// Understanding captures the project-understanding stage output
type Understanding struct {
	Description string   `json:"description"`
	ProjectType string   `json:"project_type"`
	TechStack   []string `json:"tech_stack"`
	KeyFeatures []string `json:"key_features"`
	Complexity  string   `json:"complexity"`
}

// RunResult is the complete structured outcome of a review run. The report
// formatter renders it; nothing in it is mutated after the run finishes.
type RunResult struct {
	ID       string `json:"id"`
	RunName  string `json:"run_name"`
	RepoURL  string `json:"repo_url"`
	RepoName string `json:"repo_name"`
	Model    string `json:"model"`

	Understanding *Understanding   `json:"understanding,omitempty"`
	Categories    []CategoryResult `json:"categories"`

	FilesAnalyzed int                `json:"files_analyzed"`
	FilesExcluded int                `json:"files_excluded"` // Dropped by the context budget
	ScanWarnings  []scanner.Warning  `json:"scan_warnings,omitempty"`
	RunWarnings   []string           `json:"run_warnings,omitempty"`
	LanguageStats map[string]int     `json:"language_stats,omitempty"`

	Incomplete bool          `json:"incomplete"` // True when the run was cancelled mid-way
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
}

// TotalFindings counts findings across all categories
func (r *RunResult) TotalFindings() int {
	total := 0
	for _, cr := range r.Categories {
		total += len(cr.Findings)
	}
	return total
}

// SeverityCounts tallies findings by severity
func (r *RunResult) SeverityCounts() map[Severity]int {
	counts := make(map[Severity]int)
	for _, cr := range r.Categories {
		for _, f := range cr.Findings {
			counts[f.Severity]++
		}
	}
	return counts
}

// FailedCategories returns the categories whose stages failed
func (r *RunResult) FailedCategories() []Category {
	var failed []Category
	for _, cr := range r.Categories {
		if cr.Status == StageFailed {
			failed = append(failed, cr.Category)
		}
	}
	return failed
}
