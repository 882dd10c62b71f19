package commands

import (
	"context"

	"git.home.luguber.info/inful/sitenav/internal/docset"
	"git.home.luguber.info/inful/sitenav/internal/navtree"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	SiteFlags `embed:""`

	NoDocs bool `name:"no-docs" help:"Print the configured outline without reading the documents"`
}

func (t *TreeCmd) Run(g *Global, _ *CLI) error {
	s, err := t.load(context.Background(), !t.NoDocs, docset.Options{})
	if err != nil {
		return err
	}
	return navtree.Build(s.Config, s.Docs).Write(g.out())
}
