package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-topics/pkg/hierarchy"
	"github.com/mattsolo1/grove-topics/pkg/launcher"
	"github.com/mattsolo1/grove-topics/pkg/models"
	"github.com/mattsolo1/grove-topics/pkg/selector"
	"github.com/mattsolo1/grove-topics/pkg/template"
)

// Service resolves a subject and topic, prepares new topics and launches
// the startup script.
type Service struct {
	Config *Config

	fs          billy.Filesystem
	selector    selector.Selector
	launcher    launcher.Launcher
	initializer *template.Initializer
	log         *logrus.Entry
}

// Config holds service configuration
type Config struct {
	NotesDir      string
	TemplateDir   string
	StartupScript string
	// Excludes are doublestar patterns of template entries not to copy.
	Excludes []string
}

// Option configures a Service.
type Option func(*Service)

// WithFilesystem replaces the default OS filesystem rooted at "/".
func WithFilesystem(fs billy.Filesystem) Option {
	return func(s *Service) { s.fs = fs }
}

// WithSelector sets the chooser used for every prompt.
func WithSelector(sel selector.Selector) Option {
	return func(s *Service) { s.selector = sel }
}

// WithLauncher replaces the default detached process launcher.
func WithLauncher(l launcher.Launcher) Option {
	return func(s *Service) { s.launcher = l }
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Service) { s.log = log }
}

// OpenResult describes what Open resolved.
type OpenResult struct {
	Subject *models.Resolution `json:"subject" yaml:"subject"`
	Topic   *models.Resolution `json:"topic" yaml:"topic"`
}

// New creates a new service. Configured paths are made absolute so that the
// startup script receives a path independent of its working directory.
func New(config *Config, opts ...Option) (*Service, error) {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = osfs.New("/")
	}
	if s.launcher == nil {
		s.launcher = launcher.NewProcess()
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = logrus.NewEntry(l)
	}

	cfg := *config
	for _, p := range []*string{&cfg.NotesDir, &cfg.TemplateDir, &cfg.StartupScript} {
		if *p == "" {
			continue
		}
		abs, err := filepath.Abs(*p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", *p, err)
		}
		*p = abs
	}
	s.Config = &cfg

	initializer, err := template.New(s.fs, template.WithExcludes(cfg.Excludes...), template.WithLogger(s.log))
	if err != nil {
		return nil, models.NewError(models.ConfigError, "", "", err)
	}
	s.initializer = initializer

	return s, nil
}

// Validate checks the notes root, template directory and startup script.
// Every path is checked; the result joins one error per failing path.
func (s *Service) Validate() error {
	return errors.Join(
		s.checkDir(s.Config.NotesDir, "notes directory"),
		s.checkDir(s.Config.TemplateDir, "template directory"),
		s.checkFile(s.Config.StartupScript, "startup script"),
	)
}

func (s *Service) checkDir(path, what string) error {
	if path == "" {
		return models.NewError(models.ConfigError, "missing "+what, "", nil)
	}
	fi, err := s.fs.Stat(path)
	if err != nil || !fi.IsDir() {
		return models.NewError(models.ConfigError, "", path, errors.New("No such directory"))
	}
	return nil
}

func (s *Service) checkFile(path, what string) error {
	if path == "" {
		return models.NewError(models.ConfigError, "missing "+what, "", nil)
	}
	fi, err := s.fs.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return models.NewError(models.ConfigError, "", path, errors.New("No such file"))
	}
	return nil
}

// Open validates the configuration, lets the user pick or create a subject
// and then a topic, fills a newly created topic from the template and starts
// the startup script with the topic path. The script is not waited for.
func (s *Service) Open(ctx context.Context) (*OpenResult, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.selector == nil {
		return nil, models.NewError(models.SelectionError, "open topic", "", errors.New("no selector configured"))
	}

	resolver := hierarchy.NewResolver(s.fs, s.selector, s.log)

	subject, err := resolver.Resolve(ctx, s.Config.NotesDir, models.LevelSubject)
	if err != nil {
		return nil, err
	}

	topic, err := resolver.Resolve(ctx, subject.Path, models.LevelTopic)
	if err != nil {
		return nil, err
	}

	if topic.Created {
		if err := s.initializer.Instantiate(s.Config.TemplateDir, topic.Path, filepath.Base(topic.Path)); err != nil {
			return nil, err
		}
	}

	if err := s.launcher.Launch(ctx, s.Config.StartupScript, topic.Path); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"script": s.Config.StartupScript,
		"topic":  topic.Path,
	}).Debug("startup script launched")

	return &OpenResult{Subject: subject, Topic: topic}, nil
}
