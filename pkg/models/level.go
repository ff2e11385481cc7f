package models

import "fmt"

// PlaceholderToken is replaced with the topic name in template entry names.
const PlaceholderToken = "[topicname]"

// Level identifies one step of the notes hierarchy.
type Level string

const (
	// LevelSubject is a first-level directory under the notes root.
	LevelSubject Level = "subject"

	// LevelTopic is a second-level directory under a subject.
	LevelTopic Level = "topic"
)

// Prompt returns the selection prompt shown for the level.
func (l Level) Prompt() string {
	return "select " + string(l)
}

// CreatePrompt returns the confirmation prompt shown before creating name.
func (l Level) CreatePrompt(name string) string {
	return fmt.Sprintf("create new %s %s?", l, name)
}

// Resolution is the outcome of resolving one hierarchy level.
type Resolution struct {
	Path    string `json:"path" yaml:"path"`
	Name    string `json:"name" yaml:"name"`
	Created bool   `json:"created" yaml:"created"`
}
