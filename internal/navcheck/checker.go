package navcheck

import (
	"log/slog"
	"slices"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/docset"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// Checker applies a fixed list of rules to a site configuration.
type Checker struct {
	cfg   *Config
	rules []Rule
}

// DefaultRules returns every built-in rule in reporting order.
func DefaultRules() []Rule {
	return []Rule{
		&BaseFormatRule{},
		&NavLinkFormatRule{},
		&NavLinkResolvesRule{},
		&SidebarShapeRule{},
		&SidebarResolvesRule{},
		&SidebarDepthRule{},
		&SidebarDuplicateRule{},
		&HeadTagsRule{},
		&RepoMetadataRule{},
	}
}

// NewChecker creates a checker with the default rules minus any disabled ones.
func NewChecker(cfg *Config) *Checker {
	if cfg == nil {
		cfg = &Config{}
	}
	c := &Checker{cfg: cfg}
	for _, r := range DefaultRules() {
		if slices.Contains(cfg.Disable, r.Name()) {
			continue
		}
		c.rules = append(c.rules, r)
	}
	return c
}

// Rules returns the names of the active rules.
func (c *Checker) Rules() []string {
	names := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		names = append(names, r.Name())
	}
	return names
}

// Check validates cfg. docs may be nil to skip link resolution; an empty set still
// resolves, and reports every link as missing.
func (c *Checker) Check(cfg *config.SiteConfig, docs *docset.Set) *Result {
	result := &Result{Issues: []Issue{}}
	if cfg == nil {
		result.Issues = append(result.Issues, Issue{
			Location: "config",
			Severity: SeverityError,
			Rule:     "config",
			Message:  "No site configuration to check",
		})
		return result
	}

	result.Resolved = docs != nil
	result.Documents = docs.Len()
	_ = config.WalkNav(cfg.ThemeConfig.Nav, func(string, *config.NavItem) error {
		result.NavEntries++
		return nil
	})
	_ = config.WalkSidebar(cfg.ThemeConfig.Sidebar, func(string, *config.SidebarItem) error {
		result.SidebarEntries++
		return nil
	})

	in := &Input{Config: cfg, Docs: docs}
	for _, rule := range c.rules {
		issues := rule.Check(in)
		for _, issue := range issues {
			if c.cfg.Quiet && issue.Severity != SeverityError {
				continue
			}
			result.Issues = append(result.Issues, issue)
		}
		if len(issues) > 0 {
			slog.Debug("Rule reported issues", logfields.Rule(rule.Name()), logfields.Count(len(issues)))
		}
	}
	return result
}
