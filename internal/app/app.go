// Package app provides the application initialization and lifecycle management
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/cost"
	"github.com/repolens/repolens/internal/llm"
	"github.com/repolens/repolens/internal/logging"
	"github.com/repolens/repolens/internal/repo"
	"github.com/repolens/repolens/internal/report"
	"github.com/repolens/repolens/internal/review"
	"github.com/repolens/repolens/internal/scanner"
)

// App represents the application instance with its dependencies
type App struct {
	Config    *config.Config
	Repo      *repo.Service
	Scanner   *scanner.Service
	Formatter *report.Formatter
	Logger    *logging.Logger

	factory *llm.Factory

	// Resolved LLM selection for this invocation
	Client      llm.Client
	ClientType  llm.ClientType
	Model       string
	temperature float64
	maxTokens   int
}

// New initializes a new application instance with all its dependencies
func New() (*App, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := initLogger(cfg); err != nil {
		return nil, err
	}
	logger := logging.Default()

	logger.Info("application initializing", "log_level", cfg.Logging.Level)

	application := &App{
		Config:    cfg,
		Repo:      repo.NewService(cfg.GitHub, logger),
		Scanner:   scanner.NewService(cfg.Review, logger),
		Formatter: report.NewFormatter(),
		Logger:    logger,
		factory:   llm.NewFactory(cfg, logger),
	}

	if err := application.SelectClient("", ""); err != nil {
		// Estimation still works without a client; review does not.
		logger.Warn("no LLM client available", "error", err)
		defaultType := llm.ClientType(cfg.DefaultLLMProvider)
		application.Model, application.temperature, application.maxTokens = application.factory.DefaultModelParams(defaultType)
	}

	return application, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config) error {
	err := logging.Init(logging.Config{
		Level:      config.ParseLogLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// SelectClient resolves the LLM client and model for this invocation.
// Empty provider means the configured default with fallback; empty model
// means the provider's configured model.
func (app *App) SelectClient(provider, model string) error {
	var (
		client     llm.Client
		clientType llm.ClientType
		err        error
	)

	if provider == "" {
		client, clientType, err = app.factory.GetDefaultClient()
	} else {
		clientType = llm.ClientType(provider)
		client, err = app.factory.GetClient(clientType)
	}
	if err != nil {
		return err
	}

	if clientType == llm.Ollama {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.factory.PingOllama(pingCtx); err != nil {
			return err
		}
	}

	defaultModel, temperature, maxTokens := app.factory.DefaultModelParams(clientType)
	if model == "" {
		model = defaultModel
	}

	app.Client = client
	app.ClientType = clientType
	app.Model = model
	app.temperature = temperature
	app.maxTokens = maxTokens
	return nil
}

// SetMaxFiles overrides the file selection cap for this invocation. The
// scanner holds its own copy of the review config, so it is rebuilt here.
func (app *App) SetMaxFiles(n int) {
	app.Config.Review.MaxFiles = n
	app.Scanner = scanner.NewService(app.Config.Review, app.Logger)
}

// Fetch checks that the repository exists and clones it to a temporary
// directory. The caller owns the snapshot and must call Repo.Cleanup on
// every exit path.
func (app *App) Fetch(ctx context.Context, repoURL string) (*repo.Snapshot, error) {
	if err := app.Repo.CheckRepoExists(ctx, repoURL); err != nil {
		return nil, err
	}
	return app.Repo.Clone(ctx, repoURL)
}

// Scan selects the reviewable files from a cloned snapshot
func (app *App) Scan(snapshot *repo.Snapshot) (*scanner.Result, error) {
	return app.Scanner.Scan(snapshot.LocalPath)
}

// Estimate computes the predicted token usage and cost for reviewing the
// scanned files. It makes no network calls.
func (app *App) Estimate(scan *scanner.Result) cost.Estimate {
	included, _ := review.FitToBudget(scan.Files, app.Config.Review.MaxContextTokens)
	return cost.EstimateRun(included, cost.Params{
		InputPricePerMillion:  app.Config.Pricing.InputPerMillion,
		OutputPricePerMillion: app.Config.Pricing.OutputPerMillion,
		MaxOutputTokens:       app.maxTokens,
		CategoryCount:         len(review.Categories()) + 1, // plus the understanding stage
	})
}

// Review runs the full ordered review pipeline against the scanned files
func (app *App) Review(ctx context.Context, snapshot *repo.Snapshot, scan *scanner.Result, progress review.ProgressFunc) (*review.RunResult, error) {
	if app.Client == nil {
		return nil, fmt.Errorf("no LLM client configured - set OPENAI_API_KEY, CLAUDE_API_KEY or a local Ollama endpoint")
	}

	orchestrator := review.NewOrchestrator(
		app.Client,
		app.Model,
		app.temperature,
		app.maxTokens,
		app.Config.Review,
		app.Logger,
	)
	if progress != nil {
		orchestrator.SetProgress(progress)
	}
	return orchestrator.Run(ctx, snapshot, scan)
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	app.Logger.Info("shutting down application")
	return nil
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	application, ok := c.App.Metadata["app"].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return application, nil
}
