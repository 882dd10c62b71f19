package docset

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inful/mdfp"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// Options tunes discovery.
type Options struct {
	// Exclude holds path.Match patterns matched against slash-separated relative paths.
	Exclude []string
	// GitTimestamps fills Document.LastUpdated from the last commit touching each file.
	GitTimestamps bool
}

// ParseDocument builds a Document from a page's content. rel is the slash-separated path
// below the docs root.
func ParseDocument(rel string, content []byte) (*Document, error) {
	fm, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}
	fields, err := parseFrontmatter(fm)
	if err != nil {
		return nil, err
	}
	headings := extractHeadings(body)
	return &Document{
		RelativePath: rel,
		Route:        RouteForFile(rel),
		Title:        pageTitle(fields, headings),
		SidebarDepth: fields.SidebarDepth,
		Headings:     headings,
		Fingerprint:  mdfp.CalculateFingerprintFromParts(string(fm), string(body)),
	}, nil
}

// Discover walks root and parses every Markdown page. Directories starting with a dot
// (.vuepress, .git) and node_modules are skipped. A page whose frontmatter cannot be parsed
// is still part of the set, with its headings taken from the raw content.
func Discover(ctx context.Context, root string, opts Options) (*Set, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to resolve docs root").
			WithContext("path", root).
			Build()
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, ferrors.NotFoundError("docs root is not a directory").
			WithCause(err).
			WithContext("path", root).
			Build()
	}

	var docs []*Document
	walkErr := filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		name := d.Name()
		if d.IsDir() {
			if p != absRoot && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(name), ".md") {
			return nil
		}

		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if excluded(rel, opts.Exclude) {
			slog.Debug("Skipping excluded page", logfields.File(rel))
			return nil
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		doc, err := ParseDocument(rel, content)
		if err != nil {
			slog.Warn("Failed to parse page frontmatter", logfields.File(rel), logfields.Error(err))
			doc = &Document{
				RelativePath: rel,
				Route:        RouteForFile(rel),
				Headings:     extractHeadings(content),
				Fingerprint:  mdfp.CalculateFingerprintFromParts("", string(content)),
			}
		}
		doc.Path = p
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ferrors.WrapError(walkErr, ferrors.CategoryDocs, "failed to discover pages").
			WithContext("path", root).
			Build()
	}

	preferReadme(docs)

	if opts.GitTimestamps && len(docs) > 0 {
		rels := make([]string, 0, len(docs))
		for _, d := range docs {
			rels = append(rels, d.RelativePath)
		}
		times, err := lastCommitTimes(ctx, absRoot, rels)
		if err != nil {
			slog.Warn("Failed to read git timestamps", logfields.Path(root), logfields.Error(err))
		}
		for _, d := range docs {
			if t, ok := times[d.RelativePath]; ok {
				d.LastUpdated = t
			}
		}
	}

	slog.Debug("Discovered pages", logfields.Path(root), logfields.Count(len(docs)))
	return NewSet(absRoot, docs), nil
}

// preferReadme orders README.md ahead of index.md in the same directory so it wins the
// shared route in NewSet.
func preferReadme(docs []*Document) {
	rank := func(d *Document) int {
		if strings.EqualFold(path.Base(d.RelativePath), "readme.md") {
			return 0
		}
		return 1
	}
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Route != docs[j].Route {
			return docs[i].Route < docs[j].Route
		}
		return rank(docs[i]) < rank(docs[j])
	})
}

func excluded(rel string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		if ok, _ := path.Match(pat, path.Base(rel)); ok {
			return true
		}
	}
	return false
}
