// Package launcher starts the startup script for a resolved topic.
//
// Launching is fire-and-forget: a Launcher reports whether the process could
// be started and nothing else. No handle, exit status or cancellation is kept
// once the child is running, and callers must not expect to be able to wait
// for it.
package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/mattsolo1/grove-topics/pkg/models"
)

// Launcher starts script with the topic directory as its single argument.
type Launcher interface {
	Launch(ctx context.Context, script, topicDir string) error
}

// Process runs the script as a detached child with the given stdio files;
// a nil Stdin reads from the null device and nil outputs are discarded. Only *os.File is accepted so that no copying
// goroutine is tied to the child's lifetime.
type Process struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// NewProcess returns a launcher that inherits the current stdin, stdout and
// stderr.
func NewProcess() *Process {
	return &Process{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (p *Process) Launch(ctx context.Context, script, topicDir string) error {
	// exec.Command rather than CommandContext: the child must outlive ctx.
	cmd := exec.Command(script, topicDir)
	if p.Stdin != nil {
		cmd.Stdin = p.Stdin
	}
	if p.Stdout != nil {
		cmd.Stdout = p.Stdout
	}
	if p.Stderr != nil {
		cmd.Stderr = p.Stderr
	}

	if err := cmd.Start(); err != nil {
		return models.NewError(models.LaunchError, "start startup script", script, err)
	}
	if err := cmd.Process.Release(); err != nil {
		return models.NewError(models.LaunchError, "detach startup script", script, fmt.Errorf("pid %d: %w", cmd.Process.Pid, err))
	}
	return nil
}
