package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/git-onboard/internal/config"
	"github.com/xvierd/git-onboard/internal/ports"
)

// separatorWidth caps the rule drawn around git output.
const separatorWidth = 60

// Styles renders lesson text with the configured theme colours.
type Styles struct {
	title   lipgloss.Style
	command lipgloss.Style
	explain lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	hint    lipgloss.Style
	width   int
}

var _ ports.Styler = (*Styles)(nil)

// NewStyles builds lipgloss styles from theme.
func NewStyles(theme *config.ThemeConfig) *Styles {
	t := resolveTheme(theme)
	w := getTerminalWidth() - 4
	if w > separatorWidth {
		w = separatorWidth
	}
	return &Styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.ColorTitle)),
		command: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.ColorCommand)),
		explain: lipgloss.NewStyle().Foreground(lipgloss.Color(t.ColorExplain)),
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.ColorSuccess)),
		err:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.ColorError)),
		hint:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(t.ColorHelp)),
		width:   w,
	}
}

func (s *Styles) Title(v string) string   { return s.title.Render(v) }
func (s *Styles) Command(v string) string { return s.command.Render(v) }
func (s *Styles) Explain(v string) string { return s.explain.Render(v) }
func (s *Styles) Success(v string) string { return s.success.Render(v) }
func (s *Styles) Error(v string) string   { return s.err.Render(v) }
func (s *Styles) Hint(v string) string    { return s.hint.Render(v) }

func (s *Styles) Separator() string {
	return s.hint.Render(strings.Repeat("─", s.width))
}

// PlainStyles passes text through untouched.
type PlainStyles struct{}

var _ ports.Styler = PlainStyles{}

func (PlainStyles) Title(v string) string   { return v }
func (PlainStyles) Command(v string) string { return v }
func (PlainStyles) Explain(v string) string { return v }
func (PlainStyles) Success(v string) string { return v }
func (PlainStyles) Error(v string) string   { return v }
func (PlainStyles) Hint(v string) string    { return v }
func (PlainStyles) Separator() string       { return strings.Repeat("─", separatorWidth) }
