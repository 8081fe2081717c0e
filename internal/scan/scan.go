// Package scan discovers template files under a root directory and derives
// their registry identifiers.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// Entry is one discovered template file.
type Entry struct {
	ID     string // registry identifier derived from the path
	Path   string // absolute path to the source file
	Rel    string // path relative to the scan root
	Source string // file contents
}

// Walk enumerates template files under root in directory-traversal order and
// calls fn for each. Each call re-walks the filesystem. The walk honors
// gitignore-style exclusion (including ignore files in ancestor directories)
// and stops at the first error, either from the filesystem or from fn.
func Walk(root string, fn func(Entry) error) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return errors.ScanFailed(err, root)
	}

	matcher, err := newIgnoreMatcher(absRoot)
	if err != nil {
		return err
	}

	return filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.ScanFailed(walkErr, path)
		}
		if d.IsDir() {
			if path != absRoot && matcher.Match(pathComponents(path), true) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != Ext {
			return nil
		}
		if matcher.Match(pathComponents(path), false) {
			return nil
		}

		id, err := Name(absRoot, path)
		if err != nil {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return errors.ScanFailed(err, path)
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return errors.InvalidPath(path)
		}

		return fn(Entry{ID: id, Path: path, Rel: rel, Source: string(src)})
	})
}
