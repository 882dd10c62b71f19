package navcheck

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/sitenav/internal/editlink"
)

// BaseFormatRule checks that base is an absolute path ending in a slash.
type BaseFormatRule struct{}

// Name returns the rule identifier.
func (r *BaseFormatRule) Name() string { return "base-format" }

// Check validates base. An unset base means "/".
func (r *BaseFormatRule) Check(in *Input) []Issue {
	base := in.Config.Base
	if base == "" {
		return nil
	}
	if strings.HasPrefix(base, "/") && strings.HasSuffix(base, "/") {
		return nil
	}
	fixed := "/" + strings.Trim(base, "/") + "/"
	if fixed == "//" {
		fixed = "/"
	}
	return []Issue{{
		Location:    "base",
		Severity:    SeverityError,
		Rule:        r.Name(),
		Message:     fmt.Sprintf("base %q must start and end with /", base),
		Explanation: "base is prefixed to every route. Without both slashes generated URLs are joined incorrectly.",
		Fix:         fmt.Sprintf("Set base to %q", fixed),
		Link:        base,
	}}
}

// headElements are the elements permitted inside <head>.
var headElements = map[atom.Atom]bool{
	atom.Base:     true,
	atom.Link:     true,
	atom.Meta:     true,
	atom.Noscript: true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Template: true,
	atom.Title:    true,
}

// HeadTagsRule checks that injected head entries name elements that belong in <head>.
type HeadTagsRule struct{}

// Name returns the rule identifier.
func (r *HeadTagsRule) Name() string { return "head-tags" }

// Check validates every head entry.
func (r *HeadTagsRule) Check(in *Input) []Issue {
	var issues []Issue
	for i, h := range in.Config.Head {
		loc := fmt.Sprintf("head[%d]", i)
		if h.Tag == "" {
			issues = append(issues, Issue{
				Location: loc,
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  "Head entry has no tag name",
				Fix:      "Start the entry with an element name, e.g. ['meta', {name: 'theme-color', content: '#fff'}]",
			})
			continue
		}
		a := atom.Lookup([]byte(strings.ToLower(h.Tag)))
		switch {
		case a == 0:
			issues = append(issues, Issue{
				Location: loc,
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("Unknown HTML element %q", h.Tag),
			})
		case !headElements[a]:
			issues = append(issues, Issue{
				Location:    loc,
				Severity:    SeverityWarning,
				Rule:        r.Name(),
				Message:     fmt.Sprintf("<%s> does not belong in <head>", a),
				Explanation: "Browsers move body content out of <head>, so the element ends up at the top of every page.",
			})
		}
	}
	return issues
}

// RepoMetadataRule checks that repository settings can produce repo and edit links.
type RepoMetadataRule struct{}

// Name returns the rule identifier.
func (r *RepoMetadataRule) Name() string { return "repo-metadata" }

// Check validates repo, docsRepo and editLinks together.
func (r *RepoMetadataRule) Check(in *Input) []Issue {
	theme := in.Config.ThemeConfig
	var issues []Issue
	for _, field := range []struct{ loc, value string }{
		{"themeConfig.repo", theme.Repo},
		{"themeConfig.docsRepo", theme.DocsRepo},
	} {
		if field.value == "" {
			continue
		}
		if _, err := editlink.ParseRepo(field.value); err != nil {
			issues = append(issues, Issue{
				Location: field.loc,
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  "Malformed repository reference",
				Explanation: err.Error() + `
Accepted forms: owner/name (GitHub) or a full https URL.`,
				Link: field.value,
			})
		}
	}
	if theme.EditLinks && theme.Repo == "" && theme.DocsRepo == "" {
		issues = append(issues, Issue{
			Location: "themeConfig.editLinks",
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  "editLinks is enabled but no repository is configured",
			Fix:      "Set themeConfig.repo or themeConfig.docsRepo",
		})
	}
	return issues
}
