// Package assets mirrors a static-assets tree into the output directory,
// copying only files whose source is newer than the existing destination.
package assets

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// Sync mirrors src into dst. A file is copied when its destination is missing
// or strictly older than the source; equal modification times count as up to
// date. Directories are created at the destination regardless of file copy
// decisions. The first metadata or copy error aborts the sync. Returns the
// number of files copied.
func Sync(src, dst string) (int, error) {
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.ScanFailed(walkErr, path)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.InvalidPath(path)
		}
		dest := filepath.Join(dst, rel)

		if d.IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return errors.MkdirFailed(err, dest)
			}
			return nil
		}

		stale, err := needsCopy(path, dest)
		if err != nil {
			return err
		}
		if !stale {
			slog.Debug("Skipped asset, destination up to date", logfields.Destination(dest))
			return nil
		}

		if err := copyFile(path, dest); err != nil {
			return err
		}
		copied++
		slog.Debug("Copied asset", logfields.Source(path), logfields.Destination(dest))
		return nil
	})
	if err != nil {
		return copied, err
	}
	return copied, nil
}

// needsCopy reports whether src must be copied over dest. Ties on
// modification time favor not copying.
func needsCopy(src, dest string) (bool, error) {
	destInfo, err := os.Stat(dest)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, errors.MetadataFailed(err, dest)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, errors.MetadataFailed(err, src)
	}

	return srcInfo.ModTime().After(destInfo.ModTime()), nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.CopyFailed(err, src, dest)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.MkdirFailed(err, filepath.Dir(dest))
	}

	out, err := os.Create(dest)
	if err != nil {
		return errors.CopyFailed(err, src, dest)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.CopyFailed(err, src, dest)
	}
	if err := out.Close(); err != nil {
		return errors.CopyFailed(err, src, dest)
	}
	return nil
}
