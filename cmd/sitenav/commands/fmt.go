package commands

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"git.home.luguber.info/inful/sitenav/internal/config"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// FmtCmd implements the 'fmt' command.
type FmtCmd struct {
	Config string `arg:"" optional:"" help:"Site config file. Defaults to docs/.vuepress/config.yml or another conventional location" type:"path"`
	To     string `help:"Output format (yaml or json). Defaults to the input format"`
	Write  bool   `short:"w" help:"Write the result back instead of printing it. With --to, writes next to the input with the new extension"`
	Check  bool   `help:"Exit 1 when the file is not in canonical form, without printing it"`
}

// Run executes the fmt command. Environment references are kept verbatim.
func (f *FmtCmd) Run(g *Global, _ *CLI) error {
	path, err := (&SiteFlags{Config: f.Config}).configPath()
	if err != nil {
		return err
	}
	from, err := config.FormatFromPath(path)
	if err != nil {
		return err
	}
	to := from
	if f.To != "" {
		if to, err = config.ParseFormat(f.To); err != nil {
			return err
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read site config").
			WithContext("path", path).
			Build()
	}
	cfg, err := config.Parse(raw, from)
	if err != nil {
		if c, ok := ferrors.AsClassified(err); ok {
			return c.WithContext("path", path)
		}
		return err
	}

	out, err := canonical(cfg, to)
	if err != nil {
		return err
	}

	if f.Check {
		if to != from || !bytes.Equal(raw, out) {
			_, _ = fmt.Fprintf(g.out(), "%s is not in canonical form\n", relPath(path))
			exit(1)
		}
		return nil
	}

	if !f.Write {
		_, err := g.out().Write(out)
		return err
	}

	dest := path
	if to != from {
		dest = strings.TrimSuffix(path, filepath.Ext(path)) + "." + string(to)
	}
	if err := renameio.WriteFile(dest, out, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write site config").
			WithContext("path", dest).
			Build()
	}
	slog.Info("Formatted site config", logfields.Path(dest))
	return nil
}

// canonical marshals cfg and verifies that parsing the output gives cfg back.
func canonical(cfg *config.SiteConfig, format config.Format) ([]byte, error) {
	out, err := config.Marshal(cfg, format)
	if err != nil {
		return nil, err
	}
	again, err := config.Parse(out, format)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "canonical output does not parse").Build()
	}
	if diff := config.Diff(cfg, again); diff != "" {
		return nil, ferrors.InternalError("canonical output does not round-trip").
			WithContext("diff", diff).
			Build()
	}
	return out, nil
}
