package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/repolens/repolens/internal/app"
	"github.com/repolens/repolens/internal/cost"
	"github.com/repolens/repolens/internal/repo"
	"github.com/repolens/repolens/internal/review"
	"github.com/repolens/repolens/internal/scanner"
)

// Model represents the TUI state for one review session
type Model struct {
	app     *app.App
	options Options

	ctx    context.Context
	cancel context.CancelFunc

	status   Status
	width    int
	height   int
	errorMsg string

	snapshot *repo.Snapshot
	scan     *scanner.Result
	estimate cost.Estimate
	result   *review.RunResult

	stageName  string
	stageIndex int
	stageTotal int
	events     chan tea.Msg

	reportPath string // Where the report was written, if anywhere
	markdown   string

	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	styles   Styles
	ready    bool
}

// NewModel creates a TUI model for the given session options
func NewModel(ctx context.Context, application *app.App, options Options) Model {
	styles := DefaultStyles()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	runCtx, cancel := context.WithCancel(ctx)

	vp := viewport.New(10, 10)

	return Model{
		app:      application,
		options:  options,
		ctx:      runCtx,
		cancel:   cancel,
		status:   StatusFetching,
		events:   make(chan tea.Msg, 16),
		spinner:  s,
		viewport: vp,
		renderer: r,
		styles:   styles,
	}
}

// Init starts the fetch phase
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}
