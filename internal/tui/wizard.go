package tui

import (
	"fmt"
	"strings"

	"certgen/internal/certificate"

	tea "github.com/charmbracelet/bubbletea"
)

type wizardState int

const (
	stateInput wizardState = iota
	stateOutput
	statePrefix
	stateConfirm
)

var prompts = [...]string{
	stateInput:  "Input calibration workbook",
	stateOutput: "Output certificate workbook",
	statePrefix: "Sheet name prefix",
}

type wizardModel struct {
	req       certificate.Request
	values    [3]string
	state     wizardState
	err       string
	confirmed bool
	cancelled bool
	width     int
	styles    styles
}

func newWizardModel(defaults certificate.Request) wizardModel {
	return wizardModel{
		req:    defaults,
		values: [3]string{defaults.InputPath, defaults.OutputPath, defaults.SheetPrefix},
		state:  stateInput,
		styles: newStyles(),
	}
}

func (m wizardModel) Init() tea.Cmd {
	return nil
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
		if m.state == stateConfirm {
			return m.updateConfirm(msg)
		}
		return m.updateField(msg)
	}
	return m, nil
}

func (m wizardModel) updateField(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := &m.values[m.state]
	switch msg.Type {
	case tea.KeyRunes:
		*field += string(msg.Runes)
		m.err = ""
	case tea.KeySpace:
		*field += " "
		m.err = ""
	case tea.KeyBackspace:
		if r := []rune(*field); len(r) > 0 {
			*field = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		*field = ""
	case tea.KeyEsc:
		if m.state == stateInput {
			m.cancelled = true
			return m, tea.Quit
		}
		m.state--
		m.err = ""
	case tea.KeyEnter:
		if strings.TrimSpace(*field) == "" {
			m.err = prompts[m.state] + " cannot be empty"
			return m, nil
		}
		*field = strings.TrimSpace(*field)
		m.err = ""
		m.state++
	}
	return m, nil
}

func (m wizardModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.confirmed = true
		return m, tea.Quit
	case "n", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

// request returns the defaults with the entered values applied.
func (m wizardModel) request() certificate.Request {
	req := m.req
	req.InputPath = m.values[stateInput]
	req.OutputPath = m.values[stateOutput]
	req.SheetPrefix = m.values[statePrefix]
	return req
}

func (m wizardModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Calibration Certificate Generator"))
	b.WriteString("\n\n")

	if m.state == stateConfirm {
		req := m.request()
		b.WriteString(fmt.Sprintf("Input:    %s\n", req.InputPath))
		b.WriteString(fmt.Sprintf("Output:   %s\n", req.OutputPath))
		b.WriteString(fmt.Sprintf("Prefix:   %s\n", req.SheetPrefix))
		b.WriteString(fmt.Sprintf("Template: %s\n", req.TemplatePath))
		b.WriteString("\n")
		b.WriteString(m.styles.help.Render("Generate certificates? y/n"))
		return b.String()
	}

	for s := stateInput; s < stateConfirm; s++ {
		switch {
		case s < m.state:
			b.WriteString(m.styles.checked.Render(fmt.Sprintf("✓ %s: %s", prompts[s], m.values[s])))
		case s == m.state:
			b.WriteString(m.styles.selected.Render(fmt.Sprintf("> %s: %s█", prompts[s], m.values[s])))
		default:
			b.WriteString(m.styles.normal.Render(fmt.Sprintf("  %s: %s", prompts[s], m.values[s])))
		}
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.err.Render("❌ " + m.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("Enter: next | Esc: back | ctrl+u: clear | ctrl+c: quit"))
	return b.String()
}

// RunWizard asks for the input file, output file and sheet prefix, starting
// from defaults. ok is false when the user cancelled.
func RunWizard(defaults certificate.Request) (certificate.Request, bool, error) {
	p := tea.NewProgram(newWizardModel(defaults), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return certificate.Request{}, false, fmt.Errorf("error running TUI: %w", err)
	}

	final := finalModel.(wizardModel)
	if !final.confirmed {
		return certificate.Request{}, false, nil
	}
	return final.request(), true, nil
}
