package selector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultDmenuCommand is the chooser used when none is configured.
const DefaultDmenuCommand = "rofi -dmenu -i"

// Dmenu drives an external chooser speaking the dmenu protocol: options on
// stdin one per line, the chosen or typed line on stdout, exit status 1 when
// the user aborts. rofi, dmenu, wofi and fzf all fit.
type Dmenu struct {
	Command    string
	Args       []string
	PromptFlag string
}

// NewDmenu parses a command line such as "rofi -dmenu" into a Dmenu selector.
// The command is looked up when the first prompt is shown.
func NewDmenu(commandLine string) *Dmenu {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultDmenuCommand)
	}

	return &Dmenu{
		Command:    fields[0],
		Args:       fields[1:],
		PromptFlag: "-p",
	}
}

func (d *Dmenu) Select(ctx context.Context, prompt string, options []string) (string, error) {
	args := append([]string{}, d.Args...)
	if d.PromptFlag != "" {
		args = append(args, d.PromptFlag, prompt)
	}

	cmd := exec.CommandContext(ctx, d.Command, args...)
	cmd.Stdin = strings.NewReader(strings.Join(options, "\n"))
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("run chooser %s: %w", d.Command, err)
	}

	answer := strings.TrimRight(stdout.String(), "\r\n")
	if answer == "" {
		return "", ErrCancelled
	}
	return answer, nil
}
