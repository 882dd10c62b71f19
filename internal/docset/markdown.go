package docset

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a Markdown heading of a page.
type Heading struct {
	Level int
	Text  string
	Slug  string
}

var md = goldmark.New()

// extractHeadings returns every ATX or setext heading of body in document order.
func extractHeadings(body []byte) []Heading {
	root := md.Parser().Parse(text.NewReader(body))

	var headings []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		t := strings.TrimSpace(nodeText(h, body))
		headings = append(headings, Heading{Level: h.Level, Text: t, Slug: Slugify(t)})
		return gmast.WalkSkipChildren, nil
	})
	return headings
}

// nodeText concatenates the literal text below n, dropping emphasis and link markup.
func nodeText(n gmast.Node, src []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

// pageTitle picks the title the theme would show: frontmatter title, then the first
// level-one heading.
func pageTitle(fields pageFields, headings []Heading) string {
	if t := strings.TrimSpace(fields.Title); t != "" {
		return t
	}
	for _, h := range headings {
		if h.Level == 1 && h.Text != "" {
			return h.Text
		}
	}
	return ""
}
