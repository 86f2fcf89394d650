package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/git-onboard/internal/config"
)

// PickerItem represents one option in the picker.
type PickerItem struct {
	Label string
	Desc  string
}

// PickerResult holds the outcome of a picker interaction.
type PickerResult struct {
	Index   int
	Aborted bool
}

type pickerModel struct {
	title   string
	items   []PickerItem
	footer  string
	cursor  int
	chosen  bool
	aborted bool
	theme   config.ThemeConfig
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch s := msg.String(); s {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		default:
			// Digits jump straight to a numbered option.
			if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
				if i := int(s[0] - '1'); i < len(m.items) {
					m.cursor = i
					m.chosen = true
					return m, tea.Quit
				}
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorCommand)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	arrowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorCommand)).Bold(true)

	width := labelWidth(m.items)

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + "\n\n")

	for i, item := range m.items {
		text := fmt.Sprintf(" %d. %-*s  %s", i+1, width, item.Label, item.Desc)
		if i == m.cursor {
			b.WriteString("  " + arrowStyle.Render("▸") + activeStyle.Render(text) + "\n")
		} else {
			b.WriteString(dimStyle.Render("   "+text) + "\n")
		}
	}

	if m.footer != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  "+m.footer) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑/↓ navigate · enter select · esc back") + "\n")

	return b.String()
}

func labelWidth(items []PickerItem) int {
	w := 0
	for _, it := range items {
		if n := lipgloss.Width(it.Label); n > w {
			w = n
		}
	}
	return w
}

// RunPicker launches an interactive arrow-key picker and returns the selected index.
func RunPicker(title string, items []PickerItem, footer string, theme *config.ThemeConfig) PickerResult {
	m := pickerModel{
		title:  title,
		items:  items,
		footer: footer,
		theme:  resolveTheme(theme),
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return PickerResult{Aborted: true}
	}

	final := result.(pickerModel)
	if final.aborted || !final.chosen {
		return PickerResult{Aborted: true}
	}
	return PickerResult{Index: final.cursor}
}

// --- Yes/no confirm ---

type confirmModel struct {
	question string
	yes      bool
	chosen   bool
	aborted  bool
	theme    config.ThemeConfig
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "left", "right", "h", "l", "tab":
			m.yes = !m.yes
		case "y", "Y":
			m.yes, m.chosen = true, true
			return m, tea.Quit
		case "n", "N":
			m.yes, m.chosen = false, true
			return m, tea.Quit
		case "enter":
			m.chosen = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorCommand)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	yes, no := dimStyle.Render("   Yes "), dimStyle.Render("   No ")
	if m.yes {
		yes = activeStyle.Render(" ▸ Yes ")
	} else {
		no = activeStyle.Render(" ▸ No ")
	}
	return "\n" + titleStyle.Render("  "+m.question) + "  " + yes + no + "\n" +
		dimStyle.Render("  y/n · ←/→ toggle · enter confirm · esc back") + "\n"
}

// RunConfirm asks a yes/no question. The second result is false when the
// user backed out.
func RunConfirm(question string, theme *config.ThemeConfig) (yes bool, ok bool) {
	m := confirmModel{question: question, yes: true, theme: resolveTheme(theme)}

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return false, false
	}
	final := result.(confirmModel)
	if final.aborted || !final.chosen {
		return false, false
	}
	return final.yes, true
}

// --- Styled text prompt ---

// TextPromptResult holds the outcome of a text prompt.
type TextPromptResult struct {
	Value   string
	Aborted bool
}

type textPromptModel struct {
	title   string
	input   textinput.Model
	aborted bool
	theme   config.ThemeConfig
}

func (m textPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textPromptModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + "\n  ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  enter confirm · esc back") + "\n")

	return b.String()
}

func newTextPrompt(title, placeholder string, theme *config.ThemeConfig) textPromptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.Width = getTerminalWidth() - 6
	ti.Focus()

	return textPromptModel{
		title: title,
		input: ti,
		theme: resolveTheme(theme),
	}
}

// RunTextPrompt launches a styled text input prompt.
func RunTextPrompt(title string, placeholder string, theme *config.ThemeConfig) TextPromptResult {
	p := tea.NewProgram(newTextPrompt(title, placeholder, theme))
	result, err := p.Run()
	if err != nil {
		return TextPromptResult{Aborted: true}
	}

	final := result.(textPromptModel)
	if final.aborted {
		return TextPromptResult{Aborted: true}
	}
	return TextPromptResult{Value: strings.TrimSpace(final.input.Value())}
}
