package models

import "errors"

// ErrorKind classifies fatal failures.
type ErrorKind string

const (
	// ConfigError: a required root, template or script path is missing or of the wrong type.
	ConfigError ErrorKind = "config"

	// SelectionError: the selector failed or was cancelled.
	SelectionError ErrorKind = "selection"

	// FilesystemError: directory creation, template copy or rename failed.
	FilesystemError ErrorKind = "filesystem"

	// LaunchError: the startup script could not be started.
	LaunchError ErrorKind = "launch"
)

// Error is a classified failure. Path is the resource the operation failed on.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		if msg != "" {
			msg += " "
		}
		msg += e.Path
	}
	if e.Err != nil {
		if msg == "" {
			return e.Err.Error()
		}
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a classified error.
func NewError(kind ErrorKind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
