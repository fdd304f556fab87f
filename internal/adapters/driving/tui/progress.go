// Package tui renders live pipeline progress in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/foresight/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/foresight/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/foresight/internal/core/domain"
)

// stage is one row of the progress view.
type stage struct {
	status domain.JobStatus
	label  string
}

var stages = []stage{
	{domain.StatusIngesting, "Ingesting signals"},
	{domain.StatusPatternAnalysis, "Discovering patterns"},
	{domain.StatusSynthesizing, "Synthesizing insights"},
	{domain.StatusActionPlanning, "Planning actions"},
}

// stageIndex returns the row for status. Completed is past the last row,
// anything before ingestion is -1.
func stageIndex(status domain.JobStatus) int {
	if status == domain.StatusCompleted {
		return len(stages)
	}
	for i, s := range stages {
		if s.status == status {
			return i
		}
	}
	return -1
}

// EventMsg carries one progress event into the model.
type EventMsg struct {
	Event domain.ProgressEvent
}

type streamClosedMsg struct{}

// waitForEvent reads the next event from the stream.
func waitForEvent(events <-chan domain.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return EventMsg{Event: event}
	}
}

// Model is the bubbletea model for one job's progress.
type Model struct {
	target  string
	events  <-chan domain.ProgressEvent
	styles  *styles.Styles
	keys    *keymap.KeyMap
	spinner spinner.Model

	// reached is the furthest stage seen; a failed event keeps it in place.
	reached  int
	message  string
	final    *domain.ProgressEvent
	detached bool
	closed   bool
}

// NewModel creates a progress model reading from events.
func NewModel(target string, events <-chan domain.ProgressEvent) Model {
	s := styles.DefaultStyles()
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Active))
	return Model{
		target:  target,
		events:  events,
		styles:  s,
		keys:    keymap.DefaultKeyMap(),
		spinner: sp,
		reached: -1,
	}
}

// Init starts the spinner and the event reader.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

// Update handles events, key presses and spinner ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		event := msg.Event
		m.message = event.Message
		if idx := stageIndex(event.Status); idx > m.reached {
			m.reached = idx
		}
		if event.Status.Terminal() {
			m.final = &event
			return m, tea.Quit
		}
		return m, waitForEvent(m.events)

	case streamClosedMsg:
		m.closed = true
		return m, tea.Quit

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.detached = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the stage list.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Foresight: analysing %s", m.target)))
	b.WriteString("\n\n")

	failed := m.final != nil && m.final.Status == domain.StatusFailed
	for i, s := range stages {
		switch {
		case i < m.reached:
			b.WriteString(m.styles.Success.Render("✓ " + s.label))
		case i == m.reached && failed:
			b.WriteString(m.styles.Error.Render("✗ " + s.label))
		case i == m.reached:
			b.WriteString(m.spinner.View() + " " + m.styles.Active.Render(s.label))
		default:
			b.WriteString(m.styles.Muted.Render("· " + s.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case failed:
		b.WriteString(m.styles.Error.Render("Failed: " + m.message))
	case m.final != nil:
		b.WriteString(m.styles.Success.Render(m.message))
	case m.message != "":
		b.WriteString(m.styles.Muted.Render(m.message))
	}
	b.WriteString("\n")
	if m.final == nil {
		b.WriteString(m.styles.Muted.Render(m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc))
		b.WriteString("\n")
	}
	return b.String()
}

// Final returns the terminal event, if one arrived.
func (m Model) Final() (domain.ProgressEvent, bool) {
	if m.final == nil {
		return domain.ProgressEvent{}, false
	}
	return *m.final, true
}

// Run shows progress until a terminal event arrives and returns it.
// ErrDetached means the user quit early; ErrStreamClosed means events stopped.
func Run(
	ctx context.Context,
	target string,
	events <-chan domain.ProgressEvent,
	opts ...tea.ProgramOption,
) (domain.ProgressEvent, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(NewModel(target, events), opts...).Run()
	if err != nil {
		return domain.ProgressEvent{}, fmt.Errorf("progress view: %w", err)
	}
	return outcome(final.(Model))
}

func outcome(m Model) (domain.ProgressEvent, error) {
	if event, ok := m.Final(); ok {
		return event, nil
	}
	if m.detached {
		return domain.ProgressEvent{}, ErrDetached
	}
	return domain.ProgressEvent{}, ErrStreamClosed
}
