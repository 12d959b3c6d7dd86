package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/repolens/repolens/internal/app"
	"github.com/repolens/repolens/internal/logging"
	"github.com/repolens/repolens/internal/tui"
	"github.com/repolens/repolens/internal/utils"
)

// ReviewCommand returns the CLI command that runs a full repository review
func ReviewCommand() *cli.Command {
	return &cli.Command{
		Name:      "review",
		Usage:     "Review a remote repository and produce a markdown report",
		ArgsUsage: "<repository-url>",
		Description: "Clones the repository, estimates the LLM cost, asks for confirmation,\n" +
			"runs the ordered review stages and renders a markdown report.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the markdown report to `FILE` instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the cost confirmation prompt",
			},
			&cli.BoolFlag{
				Name:  "estimate-only",
				Usage: "Show the cost estimate and exit without reviewing",
			},
			&cli.IntFlag{
				Name:  "max-files",
				Usage: "Override the maximum number of files to review",
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Override the model used for review",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "LLM provider to use (openai, claude, or ollama)",
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Run without the interactive interface",
			},
		},
		Action: reviewAction,
	}
}

func reviewAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	repoURL := c.Args().First()
	if repoURL == "" {
		return fmt.Errorf("repository URL is required: repolens review <repository-url>")
	}

	if err := applyOverrides(c, application); err != nil {
		return err
	}

	if c.Bool("plain") || c.Bool("estimate-only") {
		return runPlainReview(c, application, repoURL)
	}

	logging.Info("starting interactive review", "repo", repoURL)
	return tui.Run(c.Context, application, tui.Options{
		RepoURL:    repoURL,
		OutputPath: c.String("output"),
		SkipPrompt: c.Bool("yes"),
	})
}

// applyOverrides applies CLI flag overrides to the loaded configuration
func applyOverrides(c *cli.Context, application *app.App) error {
	if n := c.Int("max-files"); n > 0 {
		application.SetMaxFiles(n)
	}

	provider := c.String("provider")
	model := c.String("model")
	if provider != "" || model != "" {
		if err := application.SelectClient(provider, model); err != nil {
			return fmt.Errorf("selecting LLM client: %w", err)
		}
	}
	return nil
}

// runPlainReview executes the pipeline without the TUI, printing progress
// to stderr and the report to stdout or the output file.
func runPlainReview(c *cli.Context, application *app.App, repoURL string) error {
	ctx := c.Context
	out := c.App.Writer

	utils.PrintInfo(out, "Fetching %s ...", repoURL)
	snapshot, err := application.Fetch(ctx, repoURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Repo.Cleanup(snapshot.LocalPath); err != nil {
			logging.Warn("cleanup failed", "path", snapshot.LocalPath, "error", err)
		}
	}()

	scan, err := application.Scan(snapshot)
	if err != nil {
		return err
	}
	if len(scan.Files) == 0 {
		return fmt.Errorf("no reviewable files found in %s", snapshot.FullName())
	}

	estimate := application.Estimate(scan)
	utils.RenderKeyValueTable(out, "Cost Estimate", [][2]string{
		{"Repository", snapshot.FullName()},
		{"Files selected", fmt.Sprintf("%d", len(scan.Files))},
		{"Model", application.Model},
		{"Input tokens", fmt.Sprintf("~%d", estimate.InputTokens)},
		{"Output tokens", fmt.Sprintf("~%d", estimate.OutputTokens)},
		{"Estimated cost", fmt.Sprintf("$%.4f", estimate.TotalCostUSD)},
	})

	if c.Bool("estimate-only") {
		return nil
	}

	if !c.Bool("yes") {
		if !utils.Confirm(out, os.Stdin, "Proceed with the review?") {
			utils.PrintInfo(out, "Review cancelled.")
			return nil
		}
	}

	result, err := application.Review(ctx, snapshot, scan, func(stage string, index, total int) {
		utils.PrintInfo(out, "[%d/%d] %s", index+1, total, stage)
	})
	if err != nil {
		return err
	}

	markdown, err := application.Formatter.Format(result, time.Now())
	if err != nil {
		return err
	}

	return writeReport(c, out, markdown)
}

// writeReport writes the report to the --output file, or stdout when unset
func writeReport(c *cli.Context, out io.Writer, markdown string) error {
	path := c.String("output")
	if path == "" {
		_, err := out.Write([]byte(markdown))
		return err
	}

	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	utils.PrintSuccess(out, "Report written to %s", path)
	return nil
}
