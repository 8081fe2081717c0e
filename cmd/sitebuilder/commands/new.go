package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitebuilder/internal/scaffold"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Path  string `arg:"" optional:"" default:"." help:"Directory to create the project in"`
	Force bool   `help:"Overwrite existing files in the target directory"`
}

func (n *NewCmd) Run(_ *Global, _ *CLI) error {
	fmt.Printf("Creating new site project in %s\n", n.Path)
	if err := scaffold.Instantiate(n.Path, n.Force); err != nil {
		return err
	}
	fmt.Printf("Project created. Edit %s and run 'sitebuilder build'.\n", scaffold.ConfigFileName)
	return nil
}
