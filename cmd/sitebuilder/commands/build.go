package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output  string `short:"o" help:"Output directory for the rendered site"`
	Content string `help:"Content template directory (overrides config)"`
	Theme   string `help:"Theme template directory (overrides config)"`
	Assets  string `help:"Static asset directory (overrides config)"`
	Strict  bool   `help:"Fail the build on references to unknown context fields"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	overrides := config.Overrides{
		Output:  b.Output,
		Content: b.Content,
		Theme:   b.Theme,
		Assets:  b.Assets,
	}
	if b.Strict {
		strict := true
		overrides.Strict = &strict
	}
	cfg.Apply(overrides)

	return RunBuild(cfg, root.Quiet)
}

// RunBuild renders the full site once and reports elapsed time on stdout.
func RunBuild(cfg *config.Config, quiet bool) error {
	start := time.Now()

	if err := site.New(cfg).Build(context.Background()); err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("Site built in %s -> %s\n", formatElapsed(time.Since(start)), cfg.Site.OutDir)
	}
	return nil
}
