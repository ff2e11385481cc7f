// Package hierarchy resolves one level of the notes tree (a subject under the
// notes root, or a topic under a subject) to an existing or new directory.
package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-topics/pkg/models"
	"github.com/mattsolo1/grove-topics/pkg/selector"
)

// State is a step of the resolution state machine.
type State int

const (
	StateSelecting State = iota
	StateConfirmCreate
	StateResolved
	StateFatal
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateConfirmCreate:
		return "confirm-create"
	case StateResolved:
		return "resolved"
	case StateFatal:
		return "fatal"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Resolver runs the select-or-create loop for a single level.
type Resolver struct {
	fs       billy.Filesystem
	selector selector.Selector
	log      *logrus.Entry
}

// NewResolver creates a resolver over fs. A nil logger discards output.
func NewResolver(fs billy.Filesystem, sel selector.Selector, log *logrus.Entry) *Resolver {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Resolver{
		fs:       fs,
		selector: sel,
		log:      log.WithField("component", "hierarchy"),
	}
}

// step carries the loop's working values between states.
type step struct {
	state     State
	candidate string
	result    *models.Resolution
	err       error
}

// Resolve asks the user to pick or name a child of parent. Picking an
// existing directory returns it with Created false. A new name is created
// only after confirmation; declining or dismissing the confirmation starts
// over with a fresh listing. Any other selector failure is fatal.
func (r *Resolver) Resolve(ctx context.Context, parent string, level models.Level) (*models.Resolution, error) {
	st := step{state: StateSelecting}

	for {
		prev := st.state
		switch st.state {
		case StateSelecting:
			st = r.selecting(ctx, parent, level)
		case StateConfirmCreate:
			st = r.confirmCreate(ctx, parent, level, st.candidate)
		case StateResolved:
			return st.result, nil
		case StateFatal:
			return nil, st.err
		}
		r.log.WithFields(logrus.Fields{
			"level": level,
			"from":  prev,
			"to":    st.state,
		}).Debug("resolver transition")
	}
}

func (r *Resolver) selecting(ctx context.Context, parent string, level models.Level) step {
	names, err := ListDirs(r.fs, parent)
	if err != nil {
		return fatal(models.NewError(models.FilesystemError, "list "+string(level)+" directories", parent, err))
	}

	answer, err := r.selector.Select(ctx, level.Prompt(), names)
	if err != nil {
		return fatal(models.NewError(models.SelectionError, level.Prompt(), "", err))
	}
	if answer == "" {
		return fatal(models.NewError(models.SelectionError, level.Prompt(), "", selector.ErrCancelled))
	}

	if !validName(answer) {
		r.log.WithField("name", answer).Warnf("%q is not a valid %s name", answer, level)
		return step{state: StateSelecting}
	}

	for _, name := range names {
		if name == answer {
			return resolved(r.fs.Join(parent, answer), answer, false)
		}
	}
	return step{state: StateConfirmCreate, candidate: answer}
}

func (r *Resolver) confirmCreate(ctx context.Context, parent string, level models.Level, name string) step {
	path := r.fs.Join(parent, name)

	// The listing may be stale if the directory appeared since it was taken.
	if isDir(r.fs, path) {
		return resolved(path, name, false)
	}

	ok, err := selector.Confirm(ctx, r.selector, level.CreatePrompt(name))
	if errors.Is(err, selector.ErrCancelled) {
		return step{state: StateSelecting}
	}
	if err != nil {
		return fatal(models.NewError(models.SelectionError, level.CreatePrompt(name), "", err))
	}
	if !ok {
		return step{state: StateSelecting}
	}

	if err := r.mkdir(path); err != nil {
		return fatal(models.NewError(models.FilesystemError, "create "+string(level)+" directory", path, err))
	}
	r.log.WithField("path", path).Infof("created new %s directory", level)
	return resolved(path, name, true)
}

// mkdir creates a single directory. Unlike MkdirAll it refuses to succeed
// when something already sits at path.
func (r *Resolver) mkdir(path string) error {
	if _, err := r.fs.Lstat(path); err == nil {
		return os.ErrExist
	} else if !os.IsNotExist(err) {
		return err
	}
	return r.fs.MkdirAll(path, 0755)
}

// ListDirs returns the names of the immediate subdirectories of dir in
// enumeration order. Symlinks that point at directories are included.
func ListDirs(fs billy.Filesystem, dir string) ([]string, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || (e.Mode()&os.ModeSymlink != 0 && isDir(fs, fs.Join(dir, e.Name()))) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func isDir(fs billy.Filesystem, path string) bool {
	fi, err := fs.Stat(path)
	return err == nil && fi.IsDir()
}

// validName reports whether name can be a single child directory.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsRune(name, '/') && !strings.ContainsRune(name, filepath.Separator)
}

func resolved(path, name string, created bool) step {
	return step{
		state:  StateResolved,
		result: &models.Resolution{Path: path, Name: name, Created: created},
	}
}

func fatal(err error) step {
	return step{state: StateFatal, err: err}
}
