// Package scaffold creates a new site project: configuration file, sample
// theme and content trees, and an empty assets directory.
package scaffold

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

//go:embed templates
var sampleFS embed.FS

// ConfigFileName is the configuration file a scaffolded project starts with.
const ConfigFileName = "sitebuilder.toml"

// Instantiate creates a new project at basePath. With clobber set, existing
// files are overwritten and a non-empty directory is accepted; without it,
// anything already present is an error.
func Instantiate(basePath string, clobber bool) error {
	if err := createDirChecked(basePath, clobber); err != nil {
		return err
	}
	if err := writeDefaultConfig(filepath.Join(basePath, ConfigFileName), clobber); err != nil {
		return err
	}
	if err := copySampleTree("templates/theme", filepath.Join(basePath, "theme"), clobber); err != nil {
		return err
	}
	if err := copySampleTree("templates/content", filepath.Join(basePath, "content"), clobber); err != nil {
		return err
	}
	if err := createDirChecked(filepath.Join(basePath, "assets"), clobber); err != nil {
		return err
	}
	return nil
}

func writeDefaultConfig(path string, clobber bool) error {
	if err := checkFile(path, clobber); err != nil {
		return err
	}
	return config.Default().Save(path)
}

// copySampleTree writes one embedded sample tree under dst.
func copySampleTree(src, dst string, clobber bool) error {
	if err := createDirChecked(dst, clobber); err != nil {
		return err
	}

	entries, err := fs.ReadDir(sampleFS, src)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, errors.SeverityFatal, "embedded sample tree missing").
			WithContext("path", src)
	}
	for _, entry := range entries {
		target := filepath.Join(dst, entry.Name())
		if err := checkFile(target, clobber); err != nil {
			return err
		}
		data, err := sampleFS.ReadFile(src + "/" + entry.Name())
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, errors.SeverityFatal, "embedded sample file missing").
				WithContext("path", entry.Name())
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return errors.WriteFailed(err, target)
		}
	}
	return nil
}

// createDirChecked creates path, enforcing the clobber rules for existing
// directories: an empty directory is always fine, a non-empty one needs
// clobber, and a non-directory in the way is an error.
func createDirChecked(path string, clobber bool) error {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(path, 0755); err != nil {
			return errors.MkdirFailed(err, path)
		}
		return nil
	case err != nil:
		return errors.MetadataFailed(err, path)
	case !info.IsDir():
		return errors.New(errors.CategoryValidation, errors.SeverityFatal, "path exists and is not a directory").
			WithContext("path", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return errors.ScanFailed(err, path)
	}
	if len(entries) > 0 && !clobber {
		return errors.New(errors.CategoryValidation, errors.SeverityFatal,
			"directory is non-empty; use --force to overwrite existing files").
			WithContext("path", path)
	}
	return nil
}

// checkFile applies the clobber rules to a single file destination.
func checkFile(path string, clobber bool) error {
	if _, err := os.Stat(path); err == nil {
		if !clobber {
			return errors.New(errors.CategoryValidation, errors.SeverityFatal, "file already exists").
				WithContext("path", path)
		}
		slog.Warn("File already exists and will be overwritten", logfields.Path(path))
	}
	return nil
}
