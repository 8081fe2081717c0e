package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func collect(t *testing.T, root string) []Entry {
	t.Helper()
	var entries []Entry
	require.NoError(t, Walk(root, func(e Entry) error {
		entries = append(entries, e)
		return nil
	}))
	return entries
}

func TestName(t *testing.T) {
	tests := []struct {
		root string
		path string
		want string
	}{
		{"/srv/site/theme", "/srv/site/theme/page.tmpl", "theme/page"},
		{"/srv/site/theme", "/srv/site/theme/partials/head.tmpl", "theme/partials/head"},
		{"/srv/site/content", "/srv/site/content/index.tmpl", "content/index"},
		{"/srv/site/content", "/srv/site/content/blog/post.tmpl", "content/blog/post"},
	}

	for _, test := range tests {
		got, err := Name(test.root, test.path)
		require.NoError(t, err)
		assert.Equal(t, test.want, got)
	}
}

func TestNameUsesOnlyForwardSlashes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/b/c/deep.tmpl": "x",
		"top.tmpl":        "y",
	})

	for _, e := range collect(t, root) {
		assert.NotContains(t, e.ID, "\\")
		assert.False(t, strings.ContainsRune(e.ID, os.PathSeparator) && os.PathSeparator != '/',
			"identifier %q contains an OS separator", e.ID)
	}
}

func TestWalkYieldsTemplateFilesOnly(t *testing.T) {
	root := filepath.Join(t.TempDir(), "theme")
	writeTree(t, root, map[string]string{
		"page.tmpl":          "<html>{{.content}}</html>",
		"partials/head.tmpl": "<head></head>",
		"README.md":          "not a template",
		"style.css":          "body {}",
	})

	entries := collect(t, root)
	require.Len(t, entries, 2)

	ids := []string{entries[0].ID, entries[1].ID}
	assert.Contains(t, ids, "theme/page")
	assert.Contains(t, ids, "theme/partials/head")
}

func TestWalkReadsSource(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")
	writeTree(t, root, map[string]string{"index.tmpl": "Hello {{.name}}"})

	entries := collect(t, root)
	require.Len(t, entries, 1)
	assert.Equal(t, "content/index", entries[0].ID)
	assert.Equal(t, "index.tmpl", entries[0].Rel)
	assert.Equal(t, "Hello {{.name}}", entries[0].Source)
	assert.True(t, filepath.IsAbs(entries[0].Path))
}

func TestWalkHonorsLocalIgnoreFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")
	writeTree(t, root, map[string]string{
		".gitignore":        "drafts/\nwip-*.tmpl\n",
		"index.tmpl":        "ok",
		"wip-notes.tmpl":    "excluded",
		"drafts/later.tmpl": "excluded",
	})

	entries := collect(t, root)
	require.Len(t, entries, 1)
	assert.Equal(t, "content/index", entries[0].ID)
}

func TestWalkHonorsAncestorIgnoreFile(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "content")
	require.NoError(t, os.WriteFile(filepath.Join(parent, ".gitignore"), []byte("secret-*.tmpl\n"), 0644))
	writeTree(t, root, map[string]string{
		"index.tmpl":       "ok",
		"secret-plan.tmpl": "excluded by the parent's ignore file",
	})

	entries := collect(t, root)
	require.Len(t, entries, 1)
	assert.Equal(t, "content/index", entries[0].ID)
}

func TestWalkNestedIgnoreFileAppliesToItsSubtree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "theme")
	writeTree(t, root, map[string]string{
		"page.tmpl":             "kept",
		"vendor/.gitignore":     "*.tmpl\n",
		"vendor/third.tmpl":     "excluded",
		"vendor/sub/other.tmpl": "excluded",
	})

	entries := collect(t, root)
	require.Len(t, entries, 1)
	assert.Equal(t, "theme/page", entries[0].ID)
}

func TestWalkPropagatesCallbackError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")
	writeTree(t, root, map[string]string{"index.tmpl": "x"})

	wantErr := errors.New(errors.CategoryTemplate, errors.SeverityFatal, "compile failed")
	err := Walk(root, func(Entry) error { return wantErr })
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryTemplate))
}

func TestWalkMissingRootIsScanError(t *testing.T) {
	err := Walk(filepath.Join(t.TempDir(), "does-not-exist"), func(Entry) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryScan))
}
