package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/repolens/repolens/internal/app"
	"github.com/repolens/repolens/internal/logging"
	"github.com/repolens/repolens/internal/utils"
)

// EstimateCommand returns the CLI command that previews review cost
func EstimateCommand() *cli.Command {
	return &cli.Command{
		Name:      "estimate",
		Usage:     "Estimate the cost of reviewing a repository without running it",
		ArgsUsage: "<repository-url>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-files",
				Usage: "Override the maximum number of files to review",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "LLM provider to price against (openai, claude, or ollama)",
			},
		},
		Action: estimateAction,
	}
}

func estimateAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	repoURL := c.Args().First()
	if repoURL == "" {
		return fmt.Errorf("repository URL is required: repolens estimate <repository-url>")
	}

	if err := applyOverrides(c, application); err != nil {
		return err
	}

	out := c.App.Writer

	utils.PrintInfo(out, "Fetching %s ...", repoURL)
	snapshot, err := application.Fetch(c.Context, repoURL)
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
		{"Prompts", fmt.Sprintf("%d", estimate.CategoryCount)},
		{"Input tokens", fmt.Sprintf("~%d", estimate.InputTokens)},
		{"Output tokens", fmt.Sprintf("~%d", estimate.OutputTokens)},
		{"Estimated cost", fmt.Sprintf("$%.4f", estimate.TotalCostUSD)},
	})

	for _, w := range scan.Warnings {
		utils.PrintWarning(out, "skipped %s: %s", w.Path, w.Kind)
	}
	return nil
}
