package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// Load reads, expands and parses the site config at path, then runs the normalization pass.
func Load(path string) (*SiteConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("site config not found").WithContext("path", path).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read site config").
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse(ExpandEnv(data), format)
	if err != nil {
		if c, ok := ferrors.AsClassified(err); ok {
			return nil, c.WithContext("path", path)
		}
		return nil, err
	}

	res, err := Normalize(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		slog.Warn("Config normalization", logfields.Path(path), slog.String("warning", w))
	}
	return cfg, nil
}

// Parse decodes a site config without touching the filesystem or the environment.
func Parse(data []byte, format Format) (*SiteConfig, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ferrors.ConfigError("site config is empty").Build()
	}

	var cfg SiteConfig
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse site config").
				WithContext("format", string(format)).
				Build()
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse site config").
				WithContext("format", string(FormatYAML)).
				Build()
		}
	default:
		return nil, ferrors.ValidationError("unsupported config format").WithContext("format", string(format)).Build()
	}

	compact(&cfg)
	return &cfg, nil
}

// Marshal serializes cfg in its canonical form. Parse(Marshal(cfg)) yields cfg again.
func Marshal(cfg *SiteConfig, format Format) ([]byte, error) {
	if cfg == nil {
		return nil, ferrors.InternalError("cannot marshal nil site config").Build()
	}
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode site config").Build()
		}
	case FormatYAML, "":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode site config").Build()
		}
		if err := enc.Close(); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode site config").Build()
		}
	default:
		return nil, ferrors.ValidationError("unsupported config format").WithContext("format", string(format)).Build()
	}
	return buf.Bytes(), nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv substitutes ${VAR} references. Bare $VAR is left alone so inline scripts in
// head entries survive.
func ExpandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(m []byte) []byte {
		name := envRef.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}

// DefaultDocsRoot returns the documents directory a config file belongs to. Configs kept in
// the conventional <docs>/.vuepress/ directory resolve to <docs>; anything else resolves to
// the directory holding the file.
func DefaultDocsRoot(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ".vuepress" {
		return filepath.Dir(dir)
	}
	return dir
}

// compact replaces empty collections with nil so that decoding `[]` and decoding an absent
// key give the same record.
func compact(cfg *SiteConfig) {
	cfg.Extra = compactExtra(cfg.Extra)
	cfg.ThemeConfig.Extra = compactExtra(cfg.ThemeConfig.Extra)
	if len(cfg.Head) == 0 {
		cfg.Head = nil
	}
	for i := range cfg.Head {
		if len(cfg.Head[i].Attrs) == 0 {
			cfg.Head[i].Attrs = nil
		}
	}
	cfg.ThemeConfig.Nav = compactNav(cfg.ThemeConfig.Nav)
	cfg.ThemeConfig.Sidebar = compactSidebar(cfg.ThemeConfig.Sidebar)
}

func compactNav(items []NavItem) []NavItem {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].Items = compactNav(items[i].Items)
		items[i].Extra = compactExtra(items[i].Extra)
	}
	return items
}

func compactSidebar(items []SidebarItem) []SidebarItem {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].Children = compactSidebar(items[i].Children)
		items[i].Extra = compactExtra(items[i].Extra)
	}
	return items
}

func compactExtra(extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return nil
	}
	return extra
}
