package selector

import (
	"context"
	"fmt"
)

// Answer is one scripted reply.
type Answer struct {
	Value string
	Err   error
}

// Reply answers with value.
func Reply(value string) Answer {
	return Answer{Value: value}
}

// Cancel answers as if the user dismissed the prompt.
func Cancel() Answer {
	return Answer{Err: ErrCancelled}
}

// Fail answers with err.
func Fail(err error) Answer {
	return Answer{Err: err}
}

// Call records one prompt shown to a Scripted selector.
type Call struct {
	Prompt  string
	Options []string
}

// Scripted replays a fixed list of answers in order and records every call.
// Running out of answers is reported as an error.
type Scripted struct {
	answers []Answer
	Calls   []Call
}

// NewScripted returns a selector that replies with answers in order.
func NewScripted(answers ...Answer) *Scripted {
	return &Scripted{answers: answers}
}

func (s *Scripted) Select(ctx context.Context, prompt string, options []string) (string, error) {
	s.Calls = append(s.Calls, Call{Prompt: prompt, Options: append([]string(nil), options...)})

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(s.Calls) > len(s.answers) {
		return "", fmt.Errorf("no scripted answer for prompt %q", prompt)
	}

	a := s.answers[len(s.Calls)-1]
	if a.Err != nil {
		return "", a.Err
	}
	return a.Value, nil
}

// Remaining reports how many answers have not been consumed.
func (s *Scripted) Remaining() int {
	if n := len(s.answers) - len(s.Calls); n > 0 {
		return n
	}
	return 0
}
