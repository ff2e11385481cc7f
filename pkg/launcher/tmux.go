package launcher

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/mattsolo1/grove-core/pkg/tmux"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-topics/pkg/models"
)

// Tmux opens the startup script in a tmux window named after the subject and
// topic. An existing window is focused instead, so a window is only reused
// for the same subject/topic pair. Outside a tmux session it falls back to
// Fallback.
type Tmux struct {
	Fallback Launcher
	Log      *logrus.Entry
}

func (t *Tmux) Launch(ctx context.Context, script, topicDir string) error {
	client, err := tmux.NewClient()
	if err != nil {
		if t.Log != nil {
			t.Log.WithError(err).Debug("not in a tmux session, launching directly")
		}
		return t.fallback().Launch(ctx, script, topicDir)
	}

	if err := client.FocusOrRunTUIWithErrorHandling(ctx, tmuxCommand(script, topicDir), windowName(topicDir), -1); err != nil {
		return models.NewError(models.LaunchError, "open tmux window for", script, err)
	}
	return nil
}

func (t *Tmux) fallback() Launcher {
	if t.Fallback != nil {
		return t.Fallback
	}
	return NewProcess()
}

// tmuxCommand is the shell command line run in the new window.
func tmuxCommand(script, topicDir string) string {
	return shellQuote(script) + " " + shellQuote(topicDir)
}

// windowName is "<subject>/<topic>". Characters tmux reads as target
// separators are replaced.
func windowName(topicDir string) string {
	name := filepath.Base(filepath.Dir(topicDir)) + "/" + filepath.Base(topicDir)
	return strings.NewReplacer(".", "_", ":", "_").Replace(name)
}

// shellQuote wraps s in single quotes for /bin/sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
