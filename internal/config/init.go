package config

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// Example returns the configuration written by Init.
func Example() *SiteConfig {
	depth := 2
	return &SiteConfig{
		Base:        "/pandora3/",
		Title:       "Pandora 3",
		Description: "Lightweight PHP framework",
		Head: []HeadTag{
			{Tag: "link", Attrs: map[string]any{"rel": "icon", "href": "/logo.png"}},
		},
		ThemeConfig: ThemeConfig{
			Repo:        "PandoraTeam/pandora3-Core",
			DocsRepo:    "PandoraTeam/pandora3-docs",
			DocsDir:     "docs",
			EditLinks:   true,
			LastUpdated: true,
			Nav: []NavItem{
				{Text: "Getting started", Link: "/getting-started.html"},
				{Text: "Basics", Link: "/basics.html"},
				{Text: "API", Link: "/api/"},
				{Text: "Concept", Link: "/concept.html"},
			},
			SidebarDepth: &depth,
			Sidebar: []SidebarItem{
				PathItem("/getting-started"),
				PathItem("/basics"),
				TitledItem("/api/", "API"),
				PathItem("/concept"),
			},
		},
	}
}

// Init writes the example configuration to path. An existing file is only replaced when
// force is set; the write is atomic either way.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(Example(), format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create config directory").
			WithContext("path", path).
			Build()
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write site config").
			WithContext("path", path).
			Build()
	}
	return nil
}
