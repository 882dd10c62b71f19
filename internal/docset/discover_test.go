package docset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func sampleDocs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "README.md", "# Home\n")
	writeFile(t, root, "basics.md", "---\ntitle: Basics\n---\n## Install\n### From source\n")
	writeFile(t, root, "api/README.md", "# API\n## Errors\n")
	writeFile(t, root, "api/index.md", "# Shadowed\n")
	writeFile(t, root, "api/drafts/wip.md", "# WIP\n")
	writeFile(t, root, "concept.md", "---\ntitle: [\n---\n# Concept\n")
	writeFile(t, root, ".vuepress/config.yml", "themeConfig: {}\n")
	writeFile(t, root, ".vuepress/components/Note.md", "# hidden\n")
	writeFile(t, root, "node_modules/pkg/README.md", "# dep\n")
	writeFile(t, root, "assets/logo.png", "png")
	return root
}

func TestDiscover(t *testing.T) {
	root := sampleDocs(t)

	set, err := Discover(context.Background(), root, Options{Exclude: []string{"api/drafts/*"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"/", "/api/", "/basics.html", "/concept.html"}, set.Routes())
	assert.Equal(t, 4, set.Len())

	api, ok := set.Resolve("/api/README.md")
	require.True(t, ok)
	assert.Equal(t, "api/README.md", api.RelativePath)
	assert.Equal(t, "API", api.Title)
	assert.Equal(t, filepath.Join(set.Root(), "api", "README.md"), api.Path)

	basics, ok := set.Resolve("/basics")
	require.True(t, ok)
	assert.Equal(t, "Basics", basics.Title)
	require.Len(t, basics.Headings, 2)
	assert.Equal(t, "install", basics.Headings[0].Slug)

	// Broken frontmatter keeps the page and its headings.
	concept, ok := set.Resolve("/concept.html")
	require.True(t, ok)
	assert.Empty(t, concept.Title)
	assert.Equal(t, "Concept", concept.DisplayTitle())

	_, ok = set.Resolve("/api/drafts/wip.html")
	assert.False(t, ok)
	assert.True(t, basics.LastUpdated.IsZero())
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestDiscoverCanceled(t *testing.T) {
	root := sampleDocs(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, root, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSetFingerprint(t *testing.T) {
	root := sampleDocs(t)
	ctx := context.Background()

	first, err := Discover(ctx, root, Options{})
	require.NoError(t, err)
	again, err := Discover(ctx, root, Options{})
	require.NoError(t, err)
	assert.Equal(t, first.Fingerprint(), again.Fingerprint())

	writeFile(t, root, "basics.md", "---\ntitle: Basics\n---\n## Install\n")
	changed, err := Discover(ctx, root, Options{})
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint(), changed.Fingerprint())
}

func TestFromRoutes(t *testing.T) {
	set := FromRoutes("/basics.html", "/api/README.md")

	_, ok := set.Resolve("/basics.html")
	assert.True(t, ok)
	_, ok = set.Resolve("/basics")
	assert.True(t, ok)
	_, ok = set.Resolve("/api/")
	assert.True(t, ok)
	_, ok = set.Resolve("/concept.html")
	assert.False(t, ok)

	var nilSet *Set
	_, ok = nilSet.Resolve("/basics.html")
	assert.False(t, ok)
	assert.Zero(t, nilSet.Len())
}

func TestDiscoverGitTimestamps(t *testing.T) {
	repoDir := t.TempDir()
	repo, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)

	writeFile(t, repoDir, "docs/README.md", "# Home\n")
	writeFile(t, repoDir, "docs/basics.md", "# Basics\n")

	w, err := repo.Worktree()
	require.NoError(t, err)

	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err = w.Add("docs/README.md")
	require.NoError(t, err)
	_, err = w.Commit("Add home", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: first},
	})
	require.NoError(t, err)

	second := first.Add(48 * time.Hour)
	_, err = w.Add("docs/basics.md")
	require.NoError(t, err)
	_, err = w.Commit("Add basics", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: second},
	})
	require.NoError(t, err)

	writeFile(t, repoDir, "docs/untracked.md", "# New\n")

	set, err := Discover(context.Background(), filepath.Join(repoDir, "docs"), Options{GitTimestamps: true})
	require.NoError(t, err)

	home, ok := set.Resolve("/")
	require.True(t, ok)
	assert.True(t, first.Equal(home.LastUpdated), "home: %v", home.LastUpdated)

	basics, ok := set.Resolve("/basics.html")
	require.True(t, ok)
	assert.True(t, second.Equal(basics.LastUpdated), "basics: %v", basics.LastUpdated)

	untracked, ok := set.Resolve("/untracked.html")
	require.True(t, ok)
	assert.True(t, untracked.LastUpdated.IsZero())
}

func TestDiscoverGitTimestampsOutsideRepo(t *testing.T) {
	root := sampleDocs(t)
	set, err := Discover(context.Background(), root, Options{GitTimestamps: true})
	require.NoError(t, err)
	for _, d := range set.Documents() {
		assert.True(t, d.LastUpdated.IsZero(), d.Route)
	}
}
