// Package tui renders an interactive progress view for an import run: a
// progress bar, a scrolling detail log, and cooperative cancellation.
package tui

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deckforge/internal/importer"
)

const maxDetailLines = 12

type phaseMsg importer.Phase

type progressMsg struct {
	current, total int
	status         string
}

type detailMsg string

type doneMsg struct{ result *importer.Result }

// teaSink forwards orchestrator progress into the bubbletea event loop.
// Cancelled is read from the runner goroutine, hence the atomic flag.
type teaSink struct {
	program   *tea.Program
	cancelled *atomic.Bool
}

func (s *teaSink) Phase(p importer.Phase)  { s.program.Send(phaseMsg(p)) }
func (s *teaSink) Detail(message string)   { s.program.Send(detailMsg(message)) }
func (s *teaSink) Cancelled() bool         { return s.cancelled.Load() }
func (s *teaSink) Progress(current, total int, status string) {
	s.program.Send(progressMsg{current: current, total: total, status: status})
}

// App is the import-progress screen model.
type App struct {
	width     int
	phase     importer.Phase
	bar       progress.Model
	current   int
	total     int
	status    string
	details   []string
	cancelled *atomic.Bool
	result    *importer.Result
}

func newApp(cancelled *atomic.Bool) *App {
	return &App{
		phase:     importer.PhaseProcessing,
		bar:       progress.New(progress.WithDefaultGradient()),
		width:     80,
		cancelled: cancelled,
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.bar.Width = min(60, msg.Width-8)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			a.cancelled.Store(true)
			a.addDetail("Cancelling after current file... already created cards will be kept.")
		}
	case phaseMsg:
		a.phase = importer.Phase(msg)
	case progressMsg:
		a.current, a.total, a.status = msg.current, msg.total, msg.status
	case detailMsg:
		a.addDetail(string(msg))
	case doneMsg:
		a.result = msg.result
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) addDetail(message string) {
	for _, line := range strings.Split(message, "\n") {
		a.details = append(a.details, line)
	}
	if len(a.details) > maxDetailLines {
		a.details = a.details[len(a.details)-maxDetailLines:]
	}
}

func (a *App) View() string {
	var b strings.Builder

	title := styleTitle.Render("deckforge import")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	b.WriteString("  " + styleSubtitle.Render(a.phase.String()))
	b.WriteString("\n\n")

	if a.total > 0 {
		pct := float64(a.current) / float64(a.total)
		b.WriteString("  " + a.bar.ViewAs(pct))
		b.WriteString(fmt.Sprintf("  %d/%d\n", a.current, a.total))
		b.WriteString("  " + styleSubtitle.Render(truncate(a.status, a.width-4)))
		b.WriteString("\n\n")
	}

	if len(a.details) > 0 {
		var lines []string
		for _, d := range a.details {
			line := truncate(d, a.width-8)
			switch {
			case strings.HasPrefix(d, "✓"):
				line = styleOK.Render(line)
			case strings.HasPrefix(d, "✗"), strings.HasPrefix(d, "⚠"):
				line = styleWarn.Render(line)
			}
			lines = append(lines, line)
		}
		b.WriteString(styleDetailBox.Width(min(76, a.width-2)).Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	b.WriteString("\n  " + styleSubtitle.Render("q: cancel"))
	b.WriteString("\n")
	return b.String()
}

// Run drives an import run under the TUI. The runner executes in its own
// goroutine; the returned result is the orchestrator's. The run starts
// exactly once: when the UI cannot start (e.g. no TTY), Run waits for the
// in-flight import to finish and returns its result alongside the UI
// error, so the caller never restarts the same plan.
func Run(run func(sink importer.ProgressSink) *importer.Result) (*importer.Result, error) {
	var cancelled atomic.Bool
	app := newApp(&cancelled)
	p := tea.NewProgram(app)

	sink := &teaSink{program: p, cancelled: &cancelled}
	done := make(chan *importer.Result, 1)
	go func() {
		result := run(sink)
		done <- result
		p.Send(doneMsg{result: result})
	}()

	model, err := p.Run()
	if err != nil {
		return <-done, err
	}
	final := model.(*App)
	return final.result, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
