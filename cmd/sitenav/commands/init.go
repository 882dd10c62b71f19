package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitenav/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Path  string `arg:"" optional:"" default:"docs/.vuepress/config.yml" help:"Where to write the config; the extension picks the format" type:"path"`
	Force bool   `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	out := g.out()
	_, _ = fmt.Fprintf(out, "Writing example site config to %s\n", relPath(i.Path))
	if err := config.Init(i.Path, i.Force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(out, "Initialized. Next: sitenav check")
	return nil
}
