// Package docset discovers the Markdown pages of a documentation site and answers which
// route a navigation link points at.
package docset

import (
	"path"
	"sort"
	"strings"
	"time"

	"github.com/inful/mdfp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Document is one page of the site.
type Document struct {
	Path         string // Absolute path on disk (empty for synthetic documents)
	RelativePath string // Slash-separated path below the docs root, e.g. "api/README.md"
	Route        string // Route the page is served at, e.g. "/api/"
	Title        string // Frontmatter title or first level-one heading
	SidebarDepth *int   // Per-page sidebarDepth from frontmatter
	Headings     []Heading
	Fingerprint  string
	LastUpdated  time.Time // Zero unless git timestamps were requested and available
}

var titleCaser = cases.Title(language.Und)

// DisplayTitle returns Title, or a title derived from the file or route name.
func (d *Document) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	name := d.RelativePath
	if name == "" {
		name = d.Route
	}
	name = strings.TrimSuffix(name, "/")
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	if isIndexName(strings.ToLower(base)) {
		dir := path.Dir(name)
		if dir == "." || dir == "/" || dir == "" {
			return "Home"
		}
		base = path.Base(dir)
	}
	if base == "" || base == "/" || base == "." {
		return "Home"
	}
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return titleCaser.String(base)
}

// Set is an immutable collection of documents indexed by route.
type Set struct {
	root    string
	docs    []*Document
	byRoute map[string]*Document
}

// NewSet indexes docs by route. When two documents claim the same route the first one wins.
func NewSet(root string, docs []*Document) *Set {
	s := &Set{root: root, byRoute: make(map[string]*Document, len(docs))}
	for _, d := range docs {
		if _, dup := s.byRoute[d.Route]; dup {
			continue
		}
		s.byRoute[d.Route] = d
		s.docs = append(s.docs, d)
	}
	sort.Slice(s.docs, func(i, j int) bool { return s.docs[i].Route < s.docs[j].Route })
	return s
}

// FromRoutes builds a set of title-less documents, one per route. Routes are normalized the
// same way links are.
func FromRoutes(routes ...string) *Set {
	docs := make([]*Document, 0, len(routes))
	for _, r := range routes {
		docs = append(docs, &Document{Route: NormalizeLink(r)})
	}
	return NewSet("", docs)
}

// Resolve returns the document a link points at.
func (s *Set) Resolve(link string) (*Document, bool) {
	if s == nil {
		return nil, false
	}
	route := NormalizeLink(link)
	if route == "" {
		return nil, false
	}
	d, ok := s.byRoute[route]
	return d, ok
}

// Root returns the directory the set was discovered in.
func (s *Set) Root() string { return s.root }

// Len returns the number of documents.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.docs)
}

// Documents returns the documents ordered by route.
func (s *Set) Documents() []*Document {
	if s == nil {
		return nil
	}
	out := make([]*Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Routes returns all routes in sorted order.
func (s *Set) Routes() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d.Route)
	}
	return out
}

// Fingerprint summarizes routes and page contents. It changes whenever a page is added,
// removed or edited.
func (s *Set) Fingerprint() string {
	var b strings.Builder
	for _, d := range s.Documents() {
		b.WriteString(d.Route)
		b.WriteByte('\t')
		b.WriteString(d.Fingerprint)
		b.WriteByte('\n')
	}
	return mdfp.CalculateFingerprintFromParts("", b.String())
}
