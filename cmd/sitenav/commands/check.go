package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/sitenav/internal/docset"
	"git.home.luguber.info/inful/sitenav/internal/navcheck"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	SiteFlags `embed:""`

	Format  string   `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json" env:"SITENAV_FORMAT"`
	Quiet   bool     `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	NoDocs  bool     `name:"no-docs" help:"Only check the config itself, without resolving links"`
	Disable []string `help:"Rules to skip, e.g. head-tags"`
}

// Run executes the check command. It exits 2 when errors were found and 1 when only
// warnings were found (unless --quiet).
func (c *CheckCmd) Run(g *Global, _ *CLI) error {
	s, err := c.load(context.Background(), !c.NoDocs, docset.Options{})
	if err != nil {
		return err
	}

	checker := navcheck.NewChecker(&navcheck.Config{Quiet: c.Quiet, Disable: c.Disable})
	result := checker.Check(s.Config, s.Docs)

	target := navcheck.Target{ConfigPath: relPath(s.ConfigPath)}
	if s.Docs != nil {
		target.DocsRoot = relPath(s.DocsRoot)
	}
	if err := navcheck.NewFormatter(c.Format).Format(g.out(), result, target); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if result.HasErrors() {
		exit(2)
	} else if result.HasWarnings() && !c.Quiet {
		exit(1)
	}
	return nil
}
