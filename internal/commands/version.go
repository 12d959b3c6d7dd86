package commands

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli/v2"
)

// VersionCommand returns the CLI command that prints version information
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "%s %s (%s/%s)\n",
				c.App.Name, c.App.Version, runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
