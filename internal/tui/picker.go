package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type pickerModel struct {
	sheets    []string
	selected  map[int]bool
	cursor    int
	page      int
	perPage   int
	err       string
	confirmed bool
	styles    styles
}

func newPickerModel(sheets []string) pickerModel {
	return pickerModel{
		sheets:   sheets,
		selected: make(map[int]bool),
		perPage:  15,
		styles:   newStyles(),
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		idx := m.index()
		m.perPage = msg.Height - 8
		if m.perPage < 5 {
			m.perPage = 5
		}
		m.page = idx / m.perPage
		m.cursor = idx % m.perPage
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m pickerModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else if m.page > 0 {
			m.page--
			m.cursor = m.perPage - 1
		}
	case "down", "j":
		if m.cursor < m.maxCursor() {
			m.cursor++
		} else if m.hasNextPage() {
			m.page++
			m.cursor = 0
		}
	case "left", "h":
		if m.page > 0 {
			m.page--
			m.cursor = 0
		}
	case "right", "l":
		if m.hasNextPage() {
			m.page++
			m.cursor = 0
		}
	case " ", "x":
		if idx := m.index(); idx < len(m.sheets) {
			if m.selected[idx] {
				delete(m.selected, idx)
			} else {
				m.selected[idx] = true
			}
		}
		m.err = ""
	case "a":
		for i := range m.sheets {
			m.selected[i] = true
		}
		m.err = ""
	case "c":
		m.selected = make(map[int]bool)
	case "enter":
		if len(m.selected) == 0 {
			m.err = "select at least one sheet"
			return m, nil
		}
		m.confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) index() int {
	return m.page*m.perPage + m.cursor
}

func (m pickerModel) hasNextPage() bool {
	return (m.page+1)*m.perPage < len(m.sheets)
}

func (m pickerModel) maxCursor() int {
	itemsOnPage := len(m.sheets) - m.page*m.perPage
	if itemsOnPage > m.perPage {
		return m.perPage - 1
	}
	return itemsOnPage - 1
}

// chosen returns the selected sheets in workbook order.
func (m pickerModel) chosen() []string {
	var out []string
	for i, name := range m.sheets {
		if m.selected[i] {
			out = append(out, name)
		}
	}
	return out
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Select sheets to export as PDF"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.progress.Render(fmt.Sprintf("%d of %d selected", len(m.selected), len(m.sheets))))
	b.WriteString("\n")

	totalPages := int(math.Ceil(float64(len(m.sheets)) / float64(m.perPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	b.WriteString(m.styles.help.Render(fmt.Sprintf("Page %d/%d", m.page+1, totalPages)))
	b.WriteString("\n\n")

	start := m.page * m.perPage
	end := start + m.perPage
	if end > len(m.sheets) {
		end = len(m.sheets)
	}
	for i := start; i < end; i++ {
		box := "[ ]"
		style := m.styles.normal
		if m.selected[i] {
			box = "[x]"
			style = m.styles.checked
		}
		if i-start == m.cursor {
			style = m.styles.selected
		}
		b.WriteString(style.Render(box + " " + m.sheets[i]))
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.err.Render("❌ " + m.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("↑↓: navigate | ←→: page | space: toggle | a: all | c: clear | Enter: export | q: quit"))
	return b.String()
}

// RunSheetPicker lets the user choose sheets. ErrCancelled is returned when
// the picker is closed without confirming.
func RunSheetPicker(sheets []string) ([]string, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	p := tea.NewProgram(newPickerModel(sheets), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running TUI: %w", err)
	}

	final := finalModel.(pickerModel)
	if !final.confirmed {
		return nil, ErrCancelled
	}
	return final.chosen(), nil
}
