package site

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// project lays out a site project in a temp dir and returns its config.
func project(t *testing.T, files map[string]string, mutate func(*config.Config)) *config.Config {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "content"), 0755))

	cfg := &config.Config{
		Site: config.Site{
			BaseURL: "example.com",
			OutDir:  filepath.Join(root, "html"),
			Content: filepath.Join(root, "content"),
		},
		Params: map[string]any{},
	}
	if _, err := os.Stat(filepath.Join(root, "theme")); err == nil {
		cfg.Site.Theme = filepath.Join(root, "theme")
	}
	if _, err := os.Stat(filepath.Join(root, "assets")); err == nil {
		cfg.Site.Assets = filepath.Join(root, "assets")
	}
	if mutate != nil {
		mutate(cfg)
	}
	return cfg
}

func TestBuildRendersContentAgainstParams(t *testing.T) {
	cfg := project(t, map[string]string{
		"content/index.tmpl": "Hello {{.params.name}}",
	}, func(c *config.Config) {
		c.Params["name"] = "World"
	})

	require.NoError(t, New(cfg).Build(context.Background()))

	out, err := os.ReadFile(filepath.Join(cfg.Site.OutDir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "Hello World", string(out))
}

func TestBuildWrapsContentIntoThemeLayout(t *testing.T) {
	cfg := project(t, map[string]string{
		"theme/page.tmpl": "<html><body>{{.content}}</body></html>",
		"content/index.tmpl": `{{define "main"}}<h1>{{.params.title}}</h1>{{end}}` +
			`{{wrap "theme/page" "main" .}}`,
	}, func(c *config.Config) {
		c.Params["title"] = "Home"
	})

	require.NoError(t, New(cfg).Build(context.Background()))

	out, err := os.ReadFile(filepath.Join(cfg.Site.OutDir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html><body><h1>Home</h1></body></html>", string(out))
}

func TestBuildExposesSiteFieldsAndBundledStylesheet(t *testing.T) {
	cfg := project(t, map[string]string{
		"content/index.tmpl": "{{.site.baseURL}}|{{._bundled_normalize}}",
	}, nil)

	require.NoError(t, New(cfg).Build(context.Background()))

	out, err := os.ReadFile(filepath.Join(cfg.Site.OutDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "example.com|")
	assert.Contains(t, string(out), "html{line-height:1.15")
}

func TestBuildSyncsAssets(t *testing.T) {
	cfg := project(t, map[string]string{
		"content/index.tmpl":  "x",
		"assets/img/logo.png": "png-bytes",
	}, nil)

	require.NoError(t, New(cfg).Build(context.Background()))

	got, err := os.ReadFile(filepath.Join(cfg.Site.OutDir, "img", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(got))
}

func TestBuildLeavesNewerDestinationAssetsAlone(t *testing.T) {
	cfg := project(t, map[string]string{
		"content/index.tmpl":  "x",
		"assets/img/logo.png": "old",
	}, nil)

	dest := filepath.Join(cfg.Site.OutDir, "img", "logo.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0755))
	require.NoError(t, os.WriteFile(dest, []byte("newer"), 0644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(dest, future, future))

	require.NoError(t, New(cfg).Build(context.Background()))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "newer", string(got))
}

func TestBuildStrictModeFailsOnUnknownField(t *testing.T) {
	cfg := project(t, map[string]string{
		"content/index.tmpl": "{{.params.absent}}",
	}, func(c *config.Config) {
		c.Site.Strict = true
	})

	err := New(cfg).Build(context.Background())
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnknownField))
}

func TestReloadPicksUpTemplateChanges(t *testing.T) {
	cfg := project(t, map[string]string{
		"content/index.tmpl": "before",
	}, nil)

	s := New(cfg)
	require.NoError(t, s.Build(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(cfg.Site.Content, "index.tmpl"), []byte("after"), 0644))
	require.NoError(t, s.Build(context.Background()))

	out, err := os.ReadFile(filepath.Join(cfg.Site.OutDir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "after", string(out))
}

func TestBuildMissingContentRootFails(t *testing.T) {
	cfg := project(t, nil, func(c *config.Config) {
		c.Site.Content = filepath.Join(t.TempDir(), "absent")
	})

	err := New(cfg).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryScan))
}
