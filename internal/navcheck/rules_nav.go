package navcheck

import (
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/config"
)

// NavLinkFormatRule checks that nav entries are well formed: a non-empty text and either a
// site-relative link or a dropdown of items.
type NavLinkFormatRule struct{}

// Name returns the rule identifier.
func (r *NavLinkFormatRule) Name() string { return "nav-link-format" }

// Check validates every nav entry.
func (r *NavLinkFormatRule) Check(in *Input) []Issue {
	var issues []Issue
	_ = config.WalkNav(in.Config.ThemeConfig.Nav, func(loc string, item *config.NavItem) error {
		if item.Text == "" {
			issues = append(issues, Issue{
				Location: loc,
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  "Nav entry has no text",
				Fix:      "Add a text label to the entry",
				Link:     item.Link,
			})
		}

		switch {
		case item.Link != "" && len(item.Items) > 0:
			issues = append(issues, Issue{
				Location:    loc,
				Severity:    SeverityError,
				Rule:        r.Name(),
				Message:     "Nav entry has both a link and dropdown items",
				Explanation: "An entry is either a link or a dropdown. The link of a dropdown entry is never shown.",
				Fix:         "Remove the link or move it into the items list",
				Link:        item.Link,
			})
		case item.Link == "" && len(item.Items) == 0:
			issues = append(issues, Issue{
				Location: loc,
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  "Nav entry has an empty link",
				Fix:      "Set link to a page path such as /basics.html",
			})
		case item.Link != "" && !strings.HasPrefix(item.Link, "/"):
			issues = append(issues, Issue{
				Location: loc,
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  "Nav link must begin with /",
				Explanation: `Nav links are resolved against the site root. Relative links change meaning
from page to page and external URLs cannot be checked against the document set.

Link: ` + item.Link,
				Fix:  "Use a site-relative path such as /" + strings.TrimPrefix(item.Link, "./"),
				Link: item.Link,
			})
		}
		return nil
	})
	return issues
}

// NavLinkResolvesRule checks that every nav link points at an existing page.
type NavLinkResolvesRule struct{}

// Name returns the rule identifier.
func (r *NavLinkResolvesRule) Name() string { return "nav-link-resolves" }

// Check resolves every site-relative nav link. Malformed links are left to nav-link-format.
func (r *NavLinkResolvesRule) Check(in *Input) []Issue {
	if in.Docs == nil {
		return nil
	}
	var issues []Issue
	_ = config.WalkNav(in.Config.ThemeConfig.Nav, func(loc string, item *config.NavItem) error {
		if !strings.HasPrefix(item.Link, "/") {
			return nil
		}
		if _, ok := in.Docs.Resolve(item.Link); ok {
			return nil
		}
		issues = append(issues, unresolved(r.Name(), loc, item.Link))
		return nil
	})
	return issues
}

func unresolved(rule, loc, link string) Issue {
	return Issue{
		Location: loc,
		Severity: SeverityError,
		Rule:     rule,
		Message:  "Unresolved link " + link,
		Explanation: `No page in the document set is served at this route.
Pages map to routes as: foo.md -> /foo.html, dir/README.md -> /dir/`,
		Fix:  "Create the page or correct the link",
		Link: link,
	}
}
