package navcheck

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/docset"
)

// SidebarShapeRule checks the structure of sidebar entries: paths are non-empty, groups
// have a title and children.
type SidebarShapeRule struct{}

// Name returns the rule identifier.
func (r *SidebarShapeRule) Name() string { return "sidebar-group-shape" }

// Check validates every sidebar entry.
func (r *SidebarShapeRule) Check(in *Input) []Issue {
	var issues []Issue
	_ = config.WalkSidebar(in.Config.ThemeConfig.Sidebar, func(loc string, item *config.SidebarItem) error {
		switch item.Kind {
		case config.SidebarPath, config.SidebarTitled:
			if item.Path == "" {
				issues = append(issues, Issue{
					Location: loc,
					Severity: SeverityError,
					Rule:     r.Name(),
					Message:  "Sidebar entry has an empty path",
				})
			}
			if item.Kind == config.SidebarTitled && item.Title == "" {
				issues = append(issues, Issue{
					Location: loc,
					Severity: SeverityWarning,
					Rule:     r.Name(),
					Message:  "Sidebar pair has an empty title",
					Fix:      "Use the bare path form to show the page title",
					Link:     item.Path,
				})
			}
		case config.SidebarGroup:
			if item.Title == "" {
				issues = append(issues, Issue{
					Location: loc,
					Severity: SeverityError,
					Rule:     r.Name(),
					Message:  "Sidebar group has no title",
					Fix:      "Add a title to the group",
				})
			}
			if len(item.Children) == 0 {
				issues = append(issues, Issue{
					Location: loc,
					Severity: SeverityWarning,
					Rule:     r.Name(),
					Message:  fmt.Sprintf("Sidebar group %q has no children", item.Title),
					Fix:      "Add pages to the group or remove it",
				})
			}
		}
		return nil
	})
	return issues
}

// SidebarResolvesRule checks that every sidebar path, group paths included, points at an
// existing page.
type SidebarResolvesRule struct{}

// Name returns the rule identifier.
func (r *SidebarResolvesRule) Name() string { return "sidebar-resolves" }

// Check resolves every non-empty sidebar path.
func (r *SidebarResolvesRule) Check(in *Input) []Issue {
	if in.Docs == nil {
		return nil
	}
	var issues []Issue
	_ = config.WalkSidebar(in.Config.ThemeConfig.Sidebar, func(loc string, item *config.SidebarItem) error {
		if item.Path == "" {
			return nil
		}
		if isExternal(item.Path) {
			issues = append(issues, Issue{
				Location: loc,
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  "Sidebar path is an external URL " + item.Path,
				Fix:      "Link external sites from the nav bar or from page content",
				Link:     item.Path,
			})
			return nil
		}
		if _, ok := in.Docs.Resolve(item.Path); !ok {
			issues = append(issues, unresolved(r.Name(), loc, item.Path))
		}
		return nil
	})
	return issues
}

func isExternal(link string) bool {
	return strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:") || strings.HasPrefix(link, "//")
}

// SidebarDepthRule checks sidebarDepth values in the theme, on groups and in page frontmatter.
type SidebarDepthRule struct{}

// Name returns the rule identifier.
func (r *SidebarDepthRule) Name() string { return "sidebar-depth" }

// Check validates every sidebarDepth setting.
func (r *SidebarDepthRule) Check(in *Input) []Issue {
	var issues []Issue
	if d := in.Config.ThemeConfig.SidebarDepth; d != nil {
		issues = append(issues, r.checkDepth("themeConfig.sidebarDepth", *d)...)
	}
	_ = config.WalkSidebar(in.Config.ThemeConfig.Sidebar, func(loc string, item *config.SidebarItem) error {
		if item.SidebarDepth != nil {
			issues = append(issues, r.checkDepth(loc+".sidebarDepth", *item.SidebarDepth)...)
		}
		return nil
	})
	for _, doc := range in.Docs.Documents() {
		if doc.SidebarDepth != nil {
			issues = append(issues, r.checkDepth(doc.RelativePath+" (frontmatter sidebarDepth)", *doc.SidebarDepth)...)
		}
	}
	return issues
}

func (r *SidebarDepthRule) checkDepth(loc string, depth int) []Issue {
	switch {
	case depth < 0:
		return []Issue{{
			Location: loc,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("sidebarDepth must not be negative, got %d", depth),
			Fix:      "Use 0 to hide headings, 1 for ## headings or 2 for ## and ### headings",
		}}
	case depth > config.MaxSidebarDepth:
		return []Issue{{
			Location:    loc,
			Severity:    SeverityWarning,
			Rule:        r.Name(),
			Message:     fmt.Sprintf("sidebarDepth %d has the same effect as %d", depth, config.MaxSidebarDepth),
			Explanation: "Only ## and ### headings are extracted into the sidebar.",
			Fix:         fmt.Sprintf("Set sidebarDepth to %d", config.MaxSidebarDepth),
		}}
	}
	return nil
}

// SidebarDuplicateRule reports pages listed more than once. The format tolerates this; the
// page is highlighted at every position.
type SidebarDuplicateRule struct{}

// Name returns the rule identifier.
func (r *SidebarDuplicateRule) Name() string { return "sidebar-duplicate" }

// Check compares normalized routes of all sidebar paths.
func (r *SidebarDuplicateRule) Check(in *Input) []Issue {
	var issues []Issue
	seen := make(map[string]string)
	_ = config.WalkSidebar(in.Config.ThemeConfig.Sidebar, func(loc string, item *config.SidebarItem) error {
		if item.Path == "" || isExternal(item.Path) {
			return nil
		}
		route := docset.NormalizeLink(item.Path)
		if first, dup := seen[route]; dup {
			issues = append(issues, Issue{
				Location: loc,
				Severity: SeverityInfo,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("Route %s is also listed at %s", route, first),
				Link:     item.Path,
			})
			return nil
		}
		seen[route] = loc
		return nil
	})
	return issues
}
