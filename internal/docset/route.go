package docset

import (
	"path"
	"strings"
)

// NormalizeLink maps a site-relative link onto the route of the page it points at.
//
//	/basics, /basics.md, /basics.html   -> /basics.html
//	/api/, /api/README.md, /api/index   -> /api/
//	/basics.html#setup                  -> /basics.html
//
// Links carrying any other extension (/files/manual.pdf) are returned cleaned but otherwise
// unchanged. An empty link, or one that is only an anchor or query, yields "".
func NormalizeLink(link string) string {
	l := strings.TrimSpace(link)
	if i := strings.IndexAny(l, "#?"); i >= 0 {
		l = l[:i]
	}
	if l == "" {
		return ""
	}
	if !strings.HasPrefix(l, "/") {
		l = "/" + l
	}

	trailing := strings.HasSuffix(l, "/")
	l = path.Clean(l)
	if l == "/" {
		return "/"
	}
	if trailing {
		return l + "/"
	}

	base := path.Base(l)
	lower := strings.ToLower(base)
	switch {
	case isIndexName(lower):
		return dirRoute(path.Dir(l))
	case strings.HasSuffix(lower, ".md"):
		return l[:len(l)-len(".md")] + ".html"
	case strings.HasSuffix(lower, ".html"):
		return l
	case path.Ext(lower) != "":
		return l
	default:
		return l + ".html"
	}
}

// RouteForFile returns the route of a Markdown file given its slash-separated path relative
// to the docs root.
func RouteForFile(rel string) string {
	return NormalizeLink("/" + strings.TrimPrefix(rel, "/"))
}

func isIndexName(lower string) bool {
	switch lower {
	case "readme.md", "index.md", "readme", "index", "readme.html", "index.html":
		return true
	}
	return false
}

func dirRoute(dir string) string {
	if dir == "/" || dir == "." {
		return "/"
	}
	return dir + "/"
}
