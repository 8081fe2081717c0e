// Package site composes the build pipeline: build the render context from
// the configuration, register the theme and content trees, render every
// content page, and sync static assets.
package site

import (
	"context"
	_ "embed"
	"html/template"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/assets"
	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/registry"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/scan"
)

//go:embed assets/normalize.min.css
var normalizeCSS string

// Site owns the registry and the shared render context for one build. A Site
// may outlive a single build in a long-lived process; Reload rebuilds the
// registry in place and must not overlap with Build.
type Site struct {
	cfg     *config.Config
	reg     *registry.Registry
	context map[string]any
}

// New creates a Site from a resolved configuration.
func New(cfg *config.Config) *Site {
	return &Site{
		cfg: cfg,
		reg: registry.New(registry.Options{
			Strict:  cfg.Site.Strict,
			BaseURL: cfg.Site.BaseURL,
		}),
		context: buildContext(cfg),
	}
}

// buildContext assembles the JSON-like value tree every render shares:
// the fixed site fields, the free-form params, and the bundled stylesheet.
// It is built once per Site and never mutated per page.
func buildContext(cfg *config.Config) map[string]any {
	return map[string]any{
		"site": map[string]any{
			"baseURL":    cfg.Site.BaseURL,
			"publishdir": cfg.Site.OutDir,
			"content":    cfg.Site.Content,
			"theme":      cfg.Site.Theme,
			"assets":     cfg.Site.Assets,
			"strict":     cfg.Site.Strict,
		},
		"params":             cfg.Params,
		"_bundled_normalize": template.CSS(normalizeCSS),
	}
}

// Reload clears the registry and re-registers the theme and content trees,
// theme first so content registrations win on identifier collisions within
// a root. Must not be called concurrently with in-flight renders.
func (s *Site) Reload() error {
	s.reg.Clear()

	roots := make([]string, 0, 2)
	if s.cfg.Site.Theme != "" {
		roots = append(roots, s.cfg.Site.Theme)
	}
	roots = append(roots, s.cfg.Site.Content)

	for _, root := range roots {
		count := 0
		err := scan.Walk(root, func(e scan.Entry) error {
			if err := s.reg.Register(e.ID, e.Source); err != nil {
				return err
			}
			count++
			return nil
		})
		if err != nil {
			return err
		}
		slog.Debug("Registered template tree", logfields.Root(root), logfields.Count(count))
	}
	return nil
}

// Build runs one full pipeline pass: register, render, sync.
func (s *Site) Build(ctx context.Context) error {
	start := time.Now()

	if err := s.Reload(); err != nil {
		return err
	}
	view := s.reg.Freeze()
	slog.Info("Registered templates", logfields.Count(view.Len()))

	if err := os.MkdirAll(s.cfg.Site.OutDir, 0755); err != nil {
		return errors.MkdirFailed(err, s.cfg.Site.OutDir)
	}

	pages, err := render.New(view, s.cfg.Site.OutDir).RenderTree(ctx, s.cfg.Site.Content, s.context)
	if err != nil {
		return err
	}
	slog.Info("Rendered content pages", logfields.Count(pages))

	if s.cfg.Site.Assets != "" {
		slog.Info("Copying static assets...")
		copied, err := assets.Sync(s.cfg.Site.Assets, s.cfg.Site.OutDir)
		if err != nil {
			return err
		}
		slog.Info("Synced static assets", logfields.Count(copied))
	} else {
		slog.Info("No assets folder configured, skipping sync")
	}

	slog.Info("Build finished", logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0))
	return nil
}
