// Package selector defines the interactive chooser used to pick or type
// subject and topic names, plus the implementations that don't need a TUI.
package selector

import (
	"context"
	"errors"
)

// ErrCancelled is returned when the user dismisses a prompt without answering.
var ErrCancelled = errors.New("selection cancelled")

// Answers offered by Confirm when the selector has no native confirmation.
const (
	AnswerYes = "yes"
	AnswerNo  = "no (go back)"
)

// Selector maps a prompt and an ordered option list to the user's answer.
// The answer is either one of options or free text. Implementations return
// ErrCancelled (possibly wrapped) when the user backs out.
type Selector interface {
	Select(ctx context.Context, prompt string, options []string) (string, error)
}

// Confirmer is implemented by selectors with a dedicated yes/no dialog.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Confirm asks a yes/no question. Only an explicit "yes" is affirmative.
func Confirm(ctx context.Context, s Selector, prompt string) (bool, error) {
	if c, ok := s.(Confirmer); ok {
		return c.Confirm(ctx, prompt)
	}

	answer, err := s.Select(ctx, prompt, []string{AnswerYes, AnswerNo})
	if err != nil {
		return false, err
	}
	return answer == AnswerYes, nil
}
