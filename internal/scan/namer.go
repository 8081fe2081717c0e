package scan

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// Ext is the template-file extension recognized during scanning.
const Ext = ".tmpl"

// Name derives the registry identifier for a template file discovered under
// root. The identifier is the path relative to the parent of the root, so the
// root directory's base name becomes the leading segment ("theme/page",
// "content/index"). That keeps theme and content in one namespace without
// colliding on short names. The extension is stripped and separators are
// normalized to "/".
func Name(root, path string) (string, error) {
	base := filepath.Dir(filepath.Clean(root))
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.InvalidPath(path)
	}
	if !utf8.ValidString(rel) {
		return "", errors.InvalidPath(path)
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, Ext)), nil
}
