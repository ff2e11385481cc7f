// Package chooser is a terminal chooser for picking an existing name from a
// list or typing a new one.
package chooser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mattsolo1/grove-topics/internal/tui/components/confirm"
)

const maxVisible = 10

type mode int

const (
	modeSelect mode = iota
	modeConfirm
)

// Model is the chooser state. Build it with NewSelect or NewConfirm.
type Model struct {
	mode    mode
	prompt  string
	options []string

	input    textinput.Model
	filtered []string
	cursor   int
	confirm  confirm.Model

	value     string
	confirmed bool
	cancelled bool
	done      bool
}

// NewSelect returns a chooser listing options under prompt.
func NewSelect(prompt string, options []string) Model {
	ti := textinput.New()
	ti.Placeholder = "type to filter or name a new one..."
	ti.CharLimit = 255
	ti.Width = 60
	ti.Focus()

	m := Model{
		mode:    modeSelect,
		prompt:  prompt,
		options: options,
		input:   ti,
	}
	m.refilter()
	return m
}

// NewConfirm returns a yes/no dialog asking prompt.
func NewConfirm(prompt string) Model {
	c := confirm.New()
	c.Activate(prompt)
	return Model{
		mode:    modeConfirm,
		prompt:  prompt,
		confirm: c,
	}
}

// Value is the chosen option or typed text.
func (m Model) Value() string { return m.value }

// Confirmed reports a yes answer in confirm mode.
func (m Model) Confirmed() bool { return m.confirmed }

// Cancelled reports that the user backed out.
func (m Model) Cancelled() bool { return m.cancelled }

// Done reports that the chooser has an answer or was cancelled.
func (m Model) Done() bool { return m.done }

func (m Model) Init() tea.Cmd {
	if m.mode == modeSelect {
		return textinput.Blink
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case confirm.ConfirmedMsg:
		m.confirmed = true
		return m.finish()
	case confirm.DeclinedMsg:
		return m.finish()
	case confirm.CancelledMsg:
		m.cancelled = true
		return m.finish()
	}

	if m.mode == modeConfirm {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Cancel):
			m.cancelled = true
			return m.finish()
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, keys.AcceptText):
			if typed := m.input.Value(); typed != "" {
				m.value = typed
				return m.finish()
			}
			return m, nil
		case key.Matches(msg, keys.Accept):
			if len(m.filtered) > 0 {
				m.value = m.filtered[m.cursor]
				return m.finish()
			}
			if typed := m.input.Value(); typed != "" {
				m.value = typed
				return m.finish()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refilter()
	return m, cmd
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	m.done = true
	return m, tea.Quit
}

// refilter keeps the options containing the typed text, case-insensitively.
func (m *Model) refilter() {
	filter := strings.ToLower(m.input.Value())
	m.filtered = nil
	for _, o := range m.options {
		if filter == "" || strings.Contains(strings.ToLower(o), filter) {
			m.filtered = append(m.filtered, o)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	if m.mode == modeConfirm {
		return m.confirm.View() + "\n"
	}

	var b strings.Builder
	b.WriteString(theme.DefaultTheme.Header.Render(cases.Title(language.English).String(m.prompt)))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))
	for i := start; i < end; i++ {
		if i == m.cursor {
			b.WriteString(theme.DefaultTheme.Selected.Render("> " + m.filtered[i]))
		} else {
			b.WriteString("  " + m.filtered[i])
		}
		b.WriteString("\n")
	}

	if len(m.filtered) == 0 && m.input.Value() != "" {
		b.WriteString(theme.DefaultTheme.Muted.Render(fmt.Sprintf("  enter: new %q", m.input.Value())))
		b.WriteString("\n")
	} else if len(m.filtered) > maxVisible {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.filtered))))
		b.WriteString("\n")
	}

	help := make([]string, 0, 3)
	for _, k := range keys.ShortHelp() {
		help = append(help, k.Help().Key+" "+k.Help().Desc)
	}
	b.WriteString(theme.DefaultTheme.Muted.Render(strings.Join(help, " • ")))
	b.WriteString("\n")
	return b.String()
}
