package config

import (
	"fmt"
	"strings"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// NormalizationResult captures adjustments & warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

// Normalize trims stray whitespace from every string a reader would compare against
// document routes or display. It mutates cfg in place, is idempotent and never changes a
// value that was already clean, so a normalized config still round-trips unchanged.
func Normalize(cfg *SiteConfig) (*NormalizationResult, error) {
	if cfg == nil {
		return nil, ferrors.InternalError("config nil").Build()
	}
	res := &NormalizationResult{}
	trim := func(field string, s *string) {
		t := strings.TrimSpace(*s)
		if t != *s {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: trimmed surrounding whitespace from %q", field, *s))
			*s = t
		}
	}

	trim("base", &cfg.Base)
	trim("title", &cfg.Title)
	trim("description", &cfg.Description)
	for i := range cfg.Head {
		trim(fmt.Sprintf("head[%d].tag", i), &cfg.Head[i].Tag)
	}

	tc := &cfg.ThemeConfig
	trim("themeConfig.repo", &tc.Repo)
	trim("themeConfig.docsRepo", &tc.DocsRepo)
	trim("themeConfig.docsDir", &tc.DocsDir)
	trim("themeConfig.docsBranch", &tc.DocsBranch)

	_ = WalkNav(tc.Nav, func(loc string, item *NavItem) error {
		trim(loc+".text", &item.Text)
		trim(loc+".link", &item.Link)
		return nil
	})
	_ = WalkSidebar(tc.Sidebar, func(loc string, item *SidebarItem) error {
		trim(loc+".path", &item.Path)
		trim(loc+".title", &item.Title)
		return nil
	})
	return res, nil
}
