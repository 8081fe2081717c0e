package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

const ignoreFile = ".gitignore"

// newIgnoreMatcher builds a matcher from the ignore files that govern absRoot:
// every ancestor directory's ignore file (a rule declared above the scan root
// still applies below it) plus the ignore files inside the tree itself.
// Global and repository-level git configuration is deliberately not consulted.
func newIgnoreMatcher(absRoot string) (gitignore.Matcher, error) {
	segs := pathComponents(absRoot)

	var patterns []gitignore.Pattern
	for i := range segs {
		patterns = append(patterns, readAncestorIgnore(segs[:i])...)
	}

	below, err := gitignore.ReadPatterns(osfs.New("/"), segs)
	if err != nil {
		return nil, errors.ScanFailed(err, absRoot)
	}
	patterns = append(patterns, below...)

	return gitignore.NewMatcher(patterns), nil
}

// readAncestorIgnore parses the ignore file of a single ancestor directory.
// A missing or unreadable ancestor ignore file is treated as empty; ancestors
// are outside the scan root, so their readability is not the scan's concern.
func readAncestorIgnore(domain []string) []gitignore.Pattern {
	dir := string(os.PathSeparator) + filepath.Join(domain...)
	data, err := os.ReadFile(filepath.Join(dir, ignoreFile))
	if err != nil {
		return nil
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, domain))
	}
	return patterns
}

// pathComponents splits an absolute path into the component form the
// gitignore matcher works with.
func pathComponents(abs string) []string {
	trimmed := strings.Trim(filepath.ToSlash(abs), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
