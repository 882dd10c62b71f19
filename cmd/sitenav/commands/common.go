package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/docset"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// exit is replaced in tests.
var exit = os.Exit

// Global context passed to subcommands.
type Global struct {
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Verbose   bool             `short:"v" help:"Enable verbose logging" env:"SITENAV_VERBOSE"`
	LogLevel  string           `help:"Log level (debug, info, warn, error)" default:"info" env:"SITENAV_LOG_LEVEL"`
	LogFormat string           `help:"Log output format (text or json)" default:"text" env:"SITENAV_LOG_FORMAT"`
	EnvFile   []string         `name:"env-file" help:"KEY=VALUE files used to expand environment references in the site config (default: .env and .env.local when present)" env:"SITENAV_ENV_FILE"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check CheckCmd `cmd:"" default:"withargs" help:"Check the site navigation against the documents (default)"`
	Fmt   FmtCmd   `cmd:"" help:"Print or rewrite the site config in canonical form"`
	Init  InitCmd  `cmd:"" help:"Write an example site config"`
	Tree  TreeCmd  `cmd:"" help:"Print the resolved nav bar and sidebar"`
	Pages PagesCmd `cmd:"" help:"List the pages of the document set"`
	Watch WatchCmd `cmd:"" help:"Re-check whenever the config or pages change"`
}

// AfterApply runs after flag parsing; set up logging and the environment once.
func (c *CLI) AfterApply() error {
	level := config.NormalizeLogLevel(c.LogLevel).SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if config.NormalizeLogFormat(c.LogFormat) == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	return config.LoadEnvFiles(c.EnvFile...)
}

// SiteFlags locate the site config and its docs root.
type SiteFlags struct {
	Config string `arg:"" optional:"" help:"Site config file. Defaults to docs/.vuepress/config.yml or another conventional location" type:"path"`
	Docs   string `help:"Docs root. Defaults to the directory holding .vuepress" type:"path" env:"SITENAV_DOCS"`
}

// configPath returns the explicit config path or the detected one.
func (s *SiteFlags) configPath() (string, error) {
	if s.Config != "" {
		return s.Config, nil
	}
	if p, ok := config.FindConfig("."); ok {
		slog.Debug("Detected site config", logfields.Path(p))
		return p, nil
	}
	if p, ok := config.LegacyConfig("."); ok {
		return "", ferrors.ConfigError("only a JavaScript site config was found; convert it to config.yml").
			WithContext("path", p).
			Build()
	}
	return "", ferrors.NotFoundError("no site config found (looked for docs/.vuepress/config.yml and similar)").Build()
}

func (s *SiteFlags) docsRoot(configPath string) string {
	if s.Docs != "" {
		return s.Docs
	}
	return config.DefaultDocsRoot(configPath)
}

// site is a loaded config plus, optionally, its document set.
type site struct {
	ConfigPath string
	DocsRoot   string
	Config     *config.SiteConfig
	Docs       *docset.Set
}

// load reads the config and, unless withDocs is false, discovers the documents.
func (s *SiteFlags) load(ctx context.Context, withDocs bool, opts docset.Options) (*site, error) {
	configPath, err := s.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	out := &site{ConfigPath: configPath, DocsRoot: s.docsRoot(configPath), Config: cfg}
	if !withDocs {
		return out, nil
	}
	out.Docs, err = docset.Discover(ctx, out.DocsRoot, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// relPath shortens p relative to the working directory for display.
func relPath(p string) string {
	wd, err := os.Getwd()
	if err != nil {
		return p
	}
	if rel, err := filepath.Rel(wd, p); err == nil && !filepath.IsAbs(rel) && len(rel) < len(p) {
		return rel
	}
	return p
}
