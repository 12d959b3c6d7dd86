package tui

import (
	"github.com/repolens/repolens/internal/cost"
	"github.com/repolens/repolens/internal/repo"
	"github.com/repolens/repolens/internal/review"
	"github.com/repolens/repolens/internal/scanner"
)

// fetchedMsg is delivered when the clone, scan and estimate are done
type fetchedMsg struct {
	snapshot *repo.Snapshot
	scan     *scanner.Result
	estimate cost.Estimate
	err      error
}

// stageMsg reports a review stage transition
type stageMsg struct {
	name  string
	index int
	total int
}

// reviewDoneMsg is delivered when the review run finishes
type reviewDoneMsg struct {
	result   *review.RunResult
	markdown string
	err      error
}
