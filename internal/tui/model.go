package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/valivia/image-converter/internal/converter"
)

// Model consumes the batch event stream and renders live progress. It also
// owns the only aggregation of per-file results into running counts.
type Model struct {
	events      <-chan converter.Event
	requestStop func()
	started     time.Time
	width       int
	total       int
	succeeded   int
	failed      int
	message     string
	elapsed     time.Duration
	stopping    bool
	quitting    bool
}

type doneMsg struct{}

type eventMsg struct {
	event converter.Event
}

// NewModel builds a consumer for one batch. total is the discovered file
// count; requestStop is invoked when the user asks to cancel.
func NewModel(events <-chan converter.Event, total int, requestStop func()) Model {
	return Model{
		events:      events,
		requestStop: requestStop,
		started:     time.Now(),
		total:       total,
	}
}

func (m Model) Init() tea.Cmd {
	return listenForEvents(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		switch event := msg.event.(type) {
		case converter.MessageEvent:
			m.message = event.Text
		case converter.StartProcessingEvent:
			// Rendered via the message line; counts only move on finish.
		case converter.FinishedProcessingEvent:
			if event.Success {
				m.succeeded++
			} else {
				m.failed++
			}
		case converter.QueueCompletedEvent:
			m.elapsed = event.Duration
		}
		return m, listenForEvents(m.events)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if !m.stopping {
				m.stopping = true
				m.requestStop()
			}
			return m, nil
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	processed := m.succeeded + m.failed
	ratio := 0.0
	if m.total > 0 {
		ratio = float64(processed) / float64(m.total)
		if ratio > 1 {
			ratio = 1
		}
	}

	bar := renderBar(barWidth, ratio)
	elapsed := time.Since(m.started).Round(time.Millisecond)

	lines := []string{
		titleStyle.Render("imgconv"),
		labelStyle.Render(fmt.Sprintf("Files: %d/%d", processed, m.total)) +
			dimStyle.Render(fmt.Sprintf("  failed:%d", m.failed)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(bar),
	}
	if m.message != "" {
		lines = append(lines, dimStyle.Render(m.message))
	}
	if m.stopping {
		lines = append(lines, warnStyle.Render("Stopping: letting in-flight files finish..."))
	} else {
		lines = append(lines, dimStyle.Render("press q to stop"))
	}

	return strings.Join(lines, "\n")
}

// Succeeded reports the files converted successfully so far.
func (m Model) Succeeded() int { return m.succeeded }

// Failed reports the files that failed so far.
func (m Model) Failed() int { return m.failed }

// Total reports the discovered file count.
func (m Model) Total() int { return m.total }

// Stopped reports whether the user requested cancellation.
func (m Model) Stopped() bool { return m.stopping }

// Elapsed returns the batch's total duration once the queue completed, or
// the wall time since the model started otherwise.
func (m Model) Elapsed() time.Duration {
	if m.elapsed > 0 {
		return m.elapsed
	}
	return time.Since(m.started)
}

func listenForEvents(events <-chan converter.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return eventMsg{event: event}
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
)
