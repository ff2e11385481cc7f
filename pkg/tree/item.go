package tree

import (
	"time"
)

// ItemType categorizes the different kinds of items in the notes tree.
type ItemType string

const (
	TypeSubject ItemType = "subject" // A first-level directory under the notes root
	TypeTopic   ItemType = "topic"   // A directory under a subject
)

// Item represents a single directory in the notes tree.
type Item struct {
	Path    string    `json:"path" yaml:"path"`
	Name    string    `json:"name" yaml:"name"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
	Type    ItemType  `json:"type" yaml:"type"`

	// Hierarchy
	Parent   *Item   `json:"-" yaml:"-"`
	Children []*Item `json:"children,omitempty" yaml:"children,omitempty"`
}
