package template

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/bmatcuk/doublestar/v4"
)

// copyContents copies every entry of src into dst. rel is the slash-separated
// position of src below the template root and is what excludes match against.
func (i *Initializer) copyContents(src, dst, rel string) error {
	entries, err := i.fs.ReadDir(src)
	if err != nil {
		return err
	}

	for _, e := range entries {
		entryRel := path.Join(rel, e.Name())
		if i.excluded(entryRel) {
			i.log.WithField("entry", entryRel).Debug("skipping excluded template entry")
			continue
		}

		from := i.fs.Join(src, e.Name())
		to := i.fs.Join(dst, e.Name())

		switch {
		case e.Mode()&os.ModeSymlink != 0:
			err = i.copySymlink(from, to)
		case e.IsDir():
			if err = i.fs.MkdirAll(to, e.Mode().Perm()|0700); err == nil {
				err = i.copyContents(from, to, entryRel)
			}
		case e.Mode().IsRegular():
			err = i.copyFile(from, to, e.Mode().Perm())
		default:
			err = fmt.Errorf("%s: unsupported file type %s", from, e.Mode().Type())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (i *Initializer) copyFile(from, to string, perm os.FileMode) error {
	in, err := i.fs.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := i.fs.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", from, err)
	}
	return out.Close()
}

func (i *Initializer) copySymlink(from, to string) error {
	target, err := i.fs.Readlink(from)
	if err != nil {
		return err
	}
	return i.fs.Symlink(target, to)
}

func (i *Initializer) excluded(rel string) bool {
	for _, p := range i.excludes {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
