package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/git-onboard/internal/config"
	"github.com/xvierd/git-onboard/internal/domain"
	"github.com/xvierd/git-onboard/internal/ports"
)

// Prompter is the interactive Bubble Tea implementation of ports.Prompter.
type Prompter struct {
	theme       *config.ThemeConfig
	out         io.Writer
	clearScreen bool
}

var _ ports.Prompter = (*Prompter)(nil)

// NewPrompter creates a prompter drawing with theme. Clear is a no-op
// when clearScreen is false.
func NewPrompter(out io.Writer, theme *config.ThemeConfig, clearScreen bool) *Prompter {
	return &Prompter{theme: theme, out: out, clearScreen: clearScreen}
}

// Choose shows an arrow-key picker.
func (p *Prompter) Choose(title string, choices []ports.Choice) (int, error) {
	items := make([]PickerItem, len(choices))
	for i, c := range choices {
		items[i] = PickerItem{Label: c.Label, Desc: c.Desc}
	}
	res := RunPicker(title, items, "", p.theme)
	if res.Aborted {
		return 0, domain.ErrAborted
	}
	return res.Index, nil
}

// Ask shows a single-line text input.
func (p *Prompter) Ask(prompt string) (string, error) {
	res := RunTextPrompt(prompt, "", p.theme)
	if res.Aborted {
		return "", domain.ErrAborted
	}
	return res.Value, nil
}

// Confirm shows a yes/no toggle.
func (p *Prompter) Confirm(question string) (bool, error) {
	yes, ok := RunConfirm(question, p.theme)
	if !ok {
		return false, domain.ErrAborted
	}
	return yes, nil
}

// Pause waits for Enter.
func (p *Prompter) Pause(message string) error {
	m := pauseModel{message: message, theme: resolveTheme(p.theme)}
	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return fmt.Errorf("failed to wait for input: %w", err)
	}
	if result.(pauseModel).aborted {
		return domain.ErrAborted
	}
	return nil
}

// Clear wipes the terminal.
func (p *Prompter) Clear() {
	if p.clearScreen {
		_, _ = fmt.Fprint(p.out, "\033[H\033[2J")
	}
}

type pauseModel struct {
	message string
	aborted bool
	theme   config.ThemeConfig
}

func (m pauseModel) Init() tea.Cmd { return nil }

func (m pauseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pauseModel) View() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	return "\n" + style.Render("  "+m.message) + "\n"
}
