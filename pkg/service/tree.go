package service

import (
	"github.com/mattsolo1/grove-topics/pkg/hierarchy"
	"github.com/mattsolo1/grove-topics/pkg/tree"
)

// Tree returns the subjects under the notes root with their topics as
// children, in enumeration order.
func (s *Service) Tree() ([]*tree.Item, error) {
	if err := s.checkDir(s.Config.NotesDir, "notes directory"); err != nil {
		return nil, err
	}

	subjects, err := s.children(nil, s.Config.NotesDir, tree.TypeSubject)
	if err != nil {
		return nil, err
	}
	for _, subject := range subjects {
		topics, err := s.children(subject, subject.Path, tree.TypeTopic)
		if err != nil {
			return nil, err
		}
		subject.Children = topics
	}
	return subjects, nil
}

func (s *Service) children(parent *tree.Item, dir string, typ tree.ItemType) ([]*tree.Item, error) {
	names, err := hierarchy.ListDirs(s.fs, dir)
	if err != nil {
		return nil, err
	}

	items := make([]*tree.Item, 0, len(names))
	for _, name := range names {
		path := s.fs.Join(dir, name)
		item := &tree.Item{
			Path:   path,
			Name:   name,
			Type:   typ,
			Parent: parent,
		}
		if fi, err := s.fs.Stat(path); err == nil {
			item.ModTime = fi.ModTime()
		}
		items = append(items, item)
	}
	return items, nil
}
