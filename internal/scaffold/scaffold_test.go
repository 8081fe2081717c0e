package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

func TestInstantiateCreatesProject(t *testing.T) {
	base := filepath.Join(t.TempDir(), "mysite")
	require.NoError(t, Instantiate(base, false))

	for _, path := range []string{
		ConfigFileName,
		"theme/page.tmpl",
		"theme/head.tmpl",
		"theme/header.tmpl",
		"theme/footer.tmpl",
		"theme/style.tmpl",
		"content/index.tmpl",
	} {
		_, err := os.Stat(filepath.Join(base, path))
		assert.NoError(t, err, path)
	}

	info, err := os.Stat(filepath.Join(base, "assets"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInstantiateRefusesNonEmptyDirWithoutForce(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "existing.txt"), []byte("x"), 0644))

	err := Instantiate(base, false)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestInstantiateForceOverwrites(t *testing.T) {
	base := filepath.Join(t.TempDir(), "mysite")
	require.NoError(t, Instantiate(base, false))
	require.NoError(t, os.WriteFile(filepath.Join(base, ConfigFileName), []byte("junk"), 0644))

	require.NoError(t, Instantiate(base, true))

	cfg, err := config.Load(filepath.Join(base, ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "example.com", cfg.Site.BaseURL)
}

func TestScaffoldedProjectBuilds(t *testing.T) {
	base := filepath.Join(t.TempDir(), "mysite")
	require.NoError(t, Instantiate(base, false))

	cfg, err := config.Load(filepath.Join(base, ConfigFileName))
	require.NoError(t, err)
	cfg.Site.OutDir = filepath.Join(base, "html")
	cfg.Site.Content = filepath.Join(base, "content")
	cfg.Site.Theme = filepath.Join(base, "theme")
	cfg.Site.Assets = filepath.Join(base, "assets")

	require.NoError(t, site.New(cfg).Build(context.Background()))

	out, err := os.ReadFile(filepath.Join(base, "html", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<title>My Sitebuilder Site</title>")
	assert.Contains(t, string(out), "https://blog.example.com")
}
