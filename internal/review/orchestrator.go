package review

import (
	"context"
	"fmt"
	"time"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/cost"
	"github.com/repolens/repolens/internal/extractor"
	"github.com/repolens/repolens/internal/llm"
	"github.com/repolens/repolens/internal/logging"
	"github.com/repolens/repolens/internal/repo"
	"github.com/repolens/repolens/internal/scanner"
	"github.com/repolens/repolens/internal/ulid"
)

// ProgressFunc is invoked before each stage runs. index is 0-based and
// total includes the understanding stage.
type ProgressFunc func(stage string, index, total int)

// Orchestrator runs the ordered review stages against a single LLM client
// and assembles the RunResult. A run never outlives the orchestrator call;
// nothing is persisted.
type Orchestrator struct {
	client      llm.Client
	model       string
	temperature float64
	maxTokens   int
	cfg         config.ReviewConfig
	extractor   *extractor.JSONExtractor
	logger      *logging.Logger
	onProgress  ProgressFunc
}

// NewOrchestrator creates an orchestrator bound to one client and model
func NewOrchestrator(client llm.Client, model string, temperature float64, maxTokens int, cfg config.ReviewConfig, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		cfg:         cfg,
		extractor:   extractor.NewJSONExtractor(logger),
		logger:      logger,
	}
}

// SetProgress registers a callback for stage transitions
func (o *Orchestrator) SetProgress(fn ProgressFunc) {
	o.onProgress = fn
}

// categoryPayload mirrors the JSON schema the prompts demand
type categoryPayload struct {
	Summary  string           `json:"summary"`
	Findings []findingPayload `json:"findings"`
}

type findingPayload struct {
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	File        string `json:"file,omitempty"`
	LineStart   int    `json:"line_start,omitempty"`
	LineEnd     int    `json:"line_end,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// Run executes the understanding stage followed by every category stage in
// order. Individual stage failures never abort the run: a failed stage is
// recorded and the remaining stages still execute. Cancellation marks the
// remaining stages skipped and returns a partial result.
func (o *Orchestrator) Run(ctx context.Context, snapshot *repo.Snapshot, scan *scanner.Result) (*RunResult, error) {
	started := time.Now()

	included, excluded := FitToBudget(scan.Files, o.cfg.MaxContextTokens)

	result := &RunResult{
		ID:            ulid.RunID(),
		RunName:       snapshot.RunName,
		RepoURL:       snapshot.URL,
		RepoName:      snapshot.FullName(),
		Model:         o.model,
		FilesAnalyzed: len(included),
		FilesExcluded: len(excluded),
		ScanWarnings:  scan.Warnings,
		LanguageStats: scan.LanguageStats,
		StartedAt:     started,
	}

	if scan.Truncated {
		result.RunWarnings = append(result.RunWarnings,
			fmt.Sprintf("file limit reached: only the first %d matching files were selected", o.cfg.MaxFiles))
	}
	for _, f := range excluded {
		result.RunWarnings = append(result.RunWarnings,
			fmt.Sprintf("%s excluded: repository content exceeds the context budget", f.Path))
	}

	corpusPrompt, err := BuildCorpusPrompt(result.RepoName, included, scan.LanguageStats)
	if err != nil {
		return nil, fmt.Errorf("building repository context: %w", err)
	}
	o.logger.Debug("repository context assembled",
		"files", len(included),
		"context_tokens", cost.TextTokens(corpusPrompt),
	)

	categories := Categories()
	total := len(categories) + 1

	o.progress("Understanding project", 0, total)
	if u, err := o.runUnderstanding(ctx, corpusPrompt); err != nil {
		o.logger.Warn("understanding stage failed", "error", err)
		result.RunWarnings = append(result.RunWarnings,
			fmt.Sprintf("project understanding unavailable: %v", err))
	} else {
		result.Understanding = u
	}

	var priorFindings []Finding
	for i, category := range categories {
		if ctx.Err() != nil {
			o.logger.Warn("run cancelled, skipping remaining stages", "from", category)
			result.Incomplete = true
			for _, remaining := range categories[i:] {
				result.Categories = append(result.Categories, CategoryResult{
					Category: remaining,
					Status:   StageSkipped,
				})
			}
			break
		}

		o.progress(category.Title(), i+1, total)
		cr := o.runCategory(ctx, corpusPrompt, category, priorFindings, result)
		result.Categories = append(result.Categories, cr)
		priorFindings = append(priorFindings, cr.Findings...)
	}

	result.Duration = time.Since(started)
	o.logger.Info("review run finished",
		"run_id", result.ID,
		"findings", result.TotalFindings(),
		"failed_stages", len(result.FailedCategories()),
		"duration", result.Duration,
	)
	return result, nil
}

func (o *Orchestrator) runUnderstanding(ctx context.Context, corpusPrompt string) (*Understanding, error) {
	resp, err := o.generate(ctx, UnderstandingInstruction(), BuildUnderstandingPrompt(corpusPrompt))
	if err != nil {
		return nil, err
	}

	var u Understanding
	if err := o.extractor.Extract(resp.Content, &u); err != nil {
		return nil, fmt.Errorf("parsing understanding response: %w", err)
	}
	return &u, nil
}

func (o *Orchestrator) runCategory(ctx context.Context, corpusPrompt string, category Category, prior []Finding, result *RunResult) CategoryResult {
	prompt := BuildCategoryPrompt(corpusPrompt, category, prior)

	resp, err := o.generate(ctx, SystemInstruction(), prompt)
	if err != nil {
		o.logger.Error("category stage failed", "category", category, "error", err)
		return CategoryResult{
			Category:      category,
			Status:        StageFailed,
			FailureReason: err.Error(),
		}
	}

	var payload categoryPayload
	if err := o.extractor.Extract(resp.Content, &payload); err != nil {
		// A completed call with an unparseable body still counts as a
		// completed stage; the report notes the missing findings.
		o.logger.Warn("unparseable category response", "category", category, "error", err)
		result.RunWarnings = append(result.RunWarnings,
			fmt.Sprintf("%s: response could not be parsed, findings omitted", category.Title()))
		return CategoryResult{
			Category: category,
			Status:   StageCompleted,
			Summary:  "Response could not be parsed.",
			Findings: []Finding{},
		}
	}

	findings := make([]Finding, 0, len(payload.Findings))
	for _, f := range payload.Findings {
		if f.Title == "" && f.Description == "" {
			continue
		}
		findings = append(findings, Finding{
			ID:          ulid.FindingID(),
			Category:    category,
			Severity:    MapSeverity(f.Severity),
			Title:       f.Title,
			Description: f.Description,
			Suggestion:  f.Suggestion,
			File:        f.File,
			LineStart:   f.LineStart,
			LineEnd:     f.LineEnd,
		})
	}

	o.logger.Debug("category stage completed", "category", category, "findings", len(findings))
	return CategoryResult{
		Category: category,
		Status:   StageCompleted,
		Summary:  payload.Summary,
		Findings: findings,
	}
}

func (o *Orchestrator) generate(ctx context.Context, system, user string) (*llm.ChatResponse, error) {
	req := llm.ChatRequest{
		Model: o.model,
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	}
	return o.client.GenerateChat(ctx, req)
}

func (o *Orchestrator) progress(stage string, index, total int) {
	if o.onProgress != nil {
		o.onProgress(stage, index, total)
	}
}
