package tui

import (
	"fmt"
	"strings"

	"certgen/internal/certificate"

	tea "github.com/charmbracelet/bubbletea"
)

const barWidth = 40

type eventMsg certificate.Event

// channelClosedMsg arrives if the stream ends without a final event.
type channelClosedMsg struct{}

type progressModel struct {
	events      <-chan certificate.Event
	progress    certificate.Progress
	result      certificate.Result
	err         error
	done        bool
	interrupted bool
	styles      styles
}

func newProgressModel(events <-chan certificate.Event) progressModel {
	return progressModel{events: events, styles: newStyles()}
}

func waitForEvent(events <-chan certificate.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return channelClosedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m progressModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}
	case eventMsg:
		if msg.Done {
			m.done = true
			m.result = msg.Result
			m.err = msg.Err
			return m, tea.Quit
		}
		m.progress = msg.Progress
		return m, waitForEvent(m.events)
	case channelClosedMsg:
		if !m.done {
			m.done = true
			m.err = fmt.Errorf("generation stopped unexpectedly")
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Generating certificates"))
	b.WriteString("\n\n")

	p := m.progress
	filled := 0
	if p.Total > 0 {
		filled = p.Current * barWidth / p.Total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	b.WriteString(m.styles.progress.Render(bar))
	b.WriteString("\n")

	if p.Total > 0 {
		b.WriteString(fmt.Sprintf("Creating certificate %d of %d", p.Current, p.Total))
		if p.Sheet != "" {
			b.WriteString(m.styles.help.Render(" (" + p.Sheet + ")"))
		}
	} else {
		b.WriteString("Reading calibration data...")
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.help.Render("ctrl+c: abort"))
	return b.String()
}

// RunProgress shows a progress bar fed by events until the final event.
func RunProgress(events <-chan certificate.Event) (certificate.Result, error) {
	p := tea.NewProgram(newProgressModel(events))
	finalModel, err := p.Run()
	if err != nil {
		return certificate.Result{}, fmt.Errorf("error running TUI: %w", err)
	}

	final := finalModel.(progressModel)
	if final.interrupted {
		return certificate.Result{}, ErrCancelled
	}
	return final.result, final.err
}

// Drain reads events until the channel is closed and returns the final
// one. Call it after cancelling a run the progress view was interrupted on,
// so the run has released its workbook before the program exits.
func Drain(events <-chan certificate.Event) certificate.Event {
	var last certificate.Event
	for ev := range events {
		if ev.Done {
			last = ev
		}
	}
	return last
}
