package tui

// Options configures an interactive review session
type Options struct {
	RepoURL    string // Repository to review
	OutputPath string // Optional file to write the report to
	SkipPrompt bool   // Start the review without waiting for confirmation
}

// Status represents the current phase of the TUI
type Status int

const (
	// StatusFetching covers the clone and scan phase
	StatusFetching Status = iota
	// StatusConfirming shows the cost estimate and waits for the user
	StatusConfirming
	// StatusReviewing runs the review stages
	StatusReviewing
	// StatusReport shows the rendered markdown report
	StatusReport
	// StatusError is a terminal failure state
	StatusError
)
