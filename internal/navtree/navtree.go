// Package navtree resolves the nav bar and sidebar of a site configuration into the titled
// outline a reader would see.
package navtree

import (
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/docset"
)

// Node is one entry of the resolved navigation.
type Node struct {
	Title       string
	Link        string // Link as configured, or route#slug for headings
	Route       string // Normalized route; empty for groups without a path and external links
	Group       bool
	Collapsable bool // Groups only; nav dropdowns always collapse
	Heading     bool
	External    bool
	Missing     bool // Link did not resolve in the document set
	Children    []*Node
}

// Tree is the resolved navigation of a site.
type Tree struct {
	Title   string
	Base    string
	Nav     []*Node
	Sidebar []*Node
}

// Build resolves cfg against docs. With a nil document set titles fall back to the configured
// paths, headings are not expanded and nothing is flagged missing.
func Build(cfg *config.SiteConfig, docs *docset.Set) *Tree {
	b := &builder{docs: docs}
	t := &Tree{Title: cfg.Title, Base: cfg.BasePath()}
	for i := range cfg.ThemeConfig.Nav {
		t.Nav = append(t.Nav, b.nav(&cfg.ThemeConfig.Nav[i]))
	}
	depth := cfg.ThemeConfig.Depth()
	for i := range cfg.ThemeConfig.Sidebar {
		t.Sidebar = append(t.Sidebar, b.sidebar(&cfg.ThemeConfig.Sidebar[i], depth))
	}
	return t
}

type builder struct {
	docs *docset.Set
}

func (b *builder) nav(item *config.NavItem) *Node {
	group := len(item.Items) > 0
	n := &Node{Title: item.Text, Link: item.Link, Group: group, Collapsable: group}
	if item.Link != "" {
		b.resolve(n, item.Link)
	}
	for i := range item.Items {
		n.Children = append(n.Children, b.nav(&item.Items[i]))
	}
	return n
}

func (b *builder) sidebar(item *config.SidebarItem, depth int) *Node {
	switch item.Kind {
	case config.SidebarGroup:
		n := &Node{Title: item.Title, Link: item.Path, Group: true, Collapsable: item.IsCollapsable()}
		if item.Path != "" {
			b.resolve(n, item.Path)
		}
		groupDepth := item.Depth(depth)
		for i := range item.Children {
			n.Children = append(n.Children, b.sidebar(&item.Children[i], groupDepth))
		}
		return n
	default:
		n := &Node{Title: item.Title, Link: item.Path}
		doc := b.resolve(n, item.Path)
		if doc == nil {
			if n.Title == "" {
				n.Title = item.Path
			}
			return n
		}
		if n.Title == "" {
			n.Title = doc.DisplayTitle()
		}
		if doc.SidebarDepth != nil {
			depth = *doc.SidebarDepth
		}
		n.Children = headingNodes(doc, depth)
		return n
	}
}

// resolve fills Route, External and Missing and returns the linked document, if any.
func (b *builder) resolve(n *Node, link string) *docset.Document {
	if strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:") {
		n.External = true
		return nil
	}
	n.Route = docset.NormalizeLink(link)
	if b.docs == nil {
		return nil
	}
	doc, ok := b.docs.Resolve(link)
	if !ok {
		n.Missing = true
		return nil
	}
	return doc
}

// headingNodes lists a page's ## headings, with ### headings nested below the preceding ##
// when depth is 2. A ### heading without a preceding ## is listed at the top level.
func headingNodes(doc *docset.Document, depth int) []*Node {
	if depth <= 0 {
		return nil
	}
	depth = min(depth, config.MaxSidebarDepth)

	var out []*Node
	var last *Node
	for _, h := range doc.Headings {
		switch {
		case h.Level == 2:
			last = headingNode(doc.Route, h)
			out = append(out, last)
		case h.Level == 3 && depth >= 2:
			n := headingNode(doc.Route, h)
			if last == nil {
				out = append(out, n)
				continue
			}
			last.Children = append(last.Children, n)
		}
	}
	return out
}

func headingNode(route string, h docset.Heading) *Node {
	return &Node{
		Title:   h.Text,
		Link:    route + "#" + h.Slug,
		Route:   route,
		Heading: true,
	}
}

// Missing returns every node whose link did not resolve, in outline order.
func (t *Tree) Missing() []*Node {
	var out []*Node
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.Missing {
				out = append(out, n)
			}
			walk(n.Children)
		}
	}
	walk(t.Nav)
	walk(t.Sidebar)
	return out
}
