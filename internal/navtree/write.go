package navtree

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/list"
)

// Write prints the tree as two outlines, nav bar first.
func (t *Tree) Write(w io.Writer) error {
	header := t.Base
	if t.Title != "" {
		header = fmt.Sprintf("%s (%s)", t.Title, t.Base)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, section := range []struct {
		name  string
		nodes []*Node
	}{
		{"Nav", t.Nav},
		{"Sidebar", t.Sidebar},
	} {
		if _, err := fmt.Fprintf(w, "\n%s\n", section.name); err != nil {
			return err
		}
		if len(section.nodes) == 0 {
			if _, err := fmt.Fprintln(w, "  (empty)"); err != nil {
				return err
			}
			continue
		}
		l := list.NewWriter()
		l.SetStyle(list.StyleConnectedLight)
		appendNodes(l, section.nodes)
		if _, err := fmt.Fprintln(w, l.Render()); err != nil {
			return err
		}
	}
	return nil
}

func appendNodes(l list.Writer, nodes []*Node) {
	for _, n := range nodes {
		l.AppendItem(label(n))
		if len(n.Children) > 0 {
			l.Indent()
			appendNodes(l, n.Children)
			l.UnIndent()
		}
	}
}

func label(n *Node) string {
	s := n.Title
	if n.Link != "" {
		s += " → " + n.Link
	}
	switch {
	case n.Missing:
		s += " (missing)"
	case n.External:
		s += " (external)"
	}
	if n.Group && !n.Collapsable {
		s += " (always open)"
	}
	return s
}
