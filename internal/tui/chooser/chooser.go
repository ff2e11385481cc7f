package chooser

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-topics/pkg/selector"
)

// Chooser runs the terminal chooser as a selector.Selector and
// selector.Confirmer. The UI is drawn on Output, stderr by default, so
// stdout stays free for the command's own output.
type Chooser struct {
	Input  io.Reader
	Output io.Writer
}

// New returns a chooser reading the terminal on stdin and drawing on stderr.
func New() *Chooser {
	return &Chooser{Input: os.Stdin, Output: os.Stderr}
}

func (c *Chooser) Select(ctx context.Context, prompt string, options []string) (string, error) {
	m, err := c.run(ctx, NewSelect(prompt, options))
	if err != nil {
		return "", err
	}
	if m.Cancelled() || !m.Done() {
		return "", selector.ErrCancelled
	}
	return m.Value(), nil
}

func (c *Chooser) Confirm(ctx context.Context, prompt string) (bool, error) {
	m, err := c.run(ctx, NewConfirm(prompt))
	if err != nil {
		return false, err
	}
	if m.Cancelled() || !m.Done() {
		return false, selector.ErrCancelled
	}
	return m.Confirmed(), nil
}

func (c *Chooser) run(ctx context.Context, m Model) (Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.Input != nil {
		opts = append(opts, tea.WithInput(c.Input))
	}
	if c.Output != nil {
		opts = append(opts, tea.WithOutput(c.Output))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return Model{}, fmt.Errorf("run chooser: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("run chooser: unexpected model %T", final)
	}
	return fm, nil
}
