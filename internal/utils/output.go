package utils

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	infoColor    = color.New(color.FgCyan)
)

// PrintSuccess writes a green status line
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	_, _ = successColor.Fprintf(w, format+"\n", args...)
}

// PrintWarning writes a yellow status line
func PrintWarning(w io.Writer, format string, args ...interface{}) {
	_, _ = warnColor.Fprintf(w, format+"\n", args...)
}

// PrintError writes a red status line
func PrintError(w io.Writer, format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(w, format+"\n", args...)
}

// PrintInfo writes a cyan status line
func PrintInfo(w io.Writer, format string, args ...interface{}) {
	_, _ = infoColor.Fprintf(w, format+"\n", args...)
}

// RenderKeyValueTable renders rows of label/value pairs as a bordered table
func RenderKeyValueTable(w io.Writer, title string, rows [][2]string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if title != "" {
		t.SetTitle(title)
	}

	for _, row := range rows {
		t.AppendRow(table.Row{row[0], row[1]})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})

	t.Render()
}

// Confirm prompts the user for a yes/no answer on stdin
func Confirm(w io.Writer, r io.Reader, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)

	var answer string
	if _, err := fmt.Fscanln(r, &answer); err != nil {
		return false
	}

	switch answer {
	case "y", "Y", "yes", "Yes", "YES":
		return true
	default:
		return false
	}
}
