// Package template instantiates a template directory into a newly created
// topic and personalizes the copied entry names.
package template

import (
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	billy "github.com/go-git/go-billy/v5"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-topics/pkg/models"
)

// Initializer copies a template tree into topic directories.
type Initializer struct {
	fs       billy.Filesystem
	excludes []string
	log      *logrus.Entry
}

// Option configures an Initializer.
type Option func(*Initializer)

// WithExcludes skips template entries whose slash-separated path relative to
// the template root matches any of the doublestar patterns.
func WithExcludes(patterns ...string) Option {
	return func(i *Initializer) {
		i.excludes = append(i.excludes, patterns...)
	}
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(i *Initializer) {
		i.log = log
	}
}

// New creates an Initializer operating on fs.
func New(fs billy.Filesystem, opts ...Option) (*Initializer, error) {
	i := &Initializer{fs: fs}
	for _, opt := range opts {
		opt(i)
	}
	for _, p := range i.excludes {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	if i.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		i.log = logrus.NewEntry(l)
	}
	i.log = i.log.WithField("component", "template")
	return i, nil
}

// Instantiate copies the contents of templateDir into topicDir, then renames
// every immediate entry of topicDir whose name contains the placeholder token.
//
// Only the top level is renamed. An entry nested inside a copied directory
// keeps the token in its name.
func (i *Initializer) Instantiate(templateDir, topicDir, topicName string) error {
	if err := i.copyContents(templateDir, topicDir, ""); err != nil {
		return models.NewError(models.FilesystemError, "copy template directory", templateDir, err)
	}

	return i.renamePlaceholders(topicDir, topicName)
}

func (i *Initializer) renamePlaceholders(topicDir, topicName string) error {
	entries, err := i.fs.ReadDir(topicDir)
	if err != nil {
		return models.NewError(models.FilesystemError, "read topic directory", topicDir, err)
	}

	for _, e := range entries {
		if !strings.Contains(e.Name(), models.PlaceholderToken) {
			continue
		}

		from := i.fs.Join(topicDir, e.Name())
		to := i.fs.Join(topicDir, strings.ReplaceAll(e.Name(), models.PlaceholderToken, topicName))
		if to == from {
			continue
		}

		if _, err := i.fs.Lstat(to); err == nil {
			return models.NewError(models.FilesystemError, "rename template file", from, fmt.Errorf("%s already exists", to))
		}
		if err := i.fs.Rename(from, to); err != nil {
			return models.NewError(models.FilesystemError, "rename template file", from, err)
		}
		i.log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("renamed template entry")
	}
	return nil
}
