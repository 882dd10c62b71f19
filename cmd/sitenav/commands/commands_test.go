package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/navcheck"
)

const pandoraConfig = `base: /pandora3/
title: Pandora 3
themeConfig:
  docsRepo: PandoraTeam/pandora3-docs
  docsDir: docs
  editLinks: true
  nav:
    - { text: 'Getting started', link: '/getting-started.html' }
    - { text: 'API', link: '/api/' }
  sidebar:
    - /getting-started
    - /basics
    - ['/api/', 'API']
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newSite creates a site in a temp dir, makes it the working directory and returns the
// config path.
func newSite(t *testing.T, cfg string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	configPath := filepath.Join(dir, "docs", ".vuepress", "config.yml")
	writeFile(t, configPath, cfg)
	writeFile(t, filepath.Join(dir, "docs", "README.md"), "# Home\n")
	writeFile(t, filepath.Join(dir, "docs", "getting-started.md"), "# Getting started\n\n## Install\n")
	writeFile(t, filepath.Join(dir, "docs", "basics.md"), "---\ntitle: The basics\n---\n\nText.\n")
	writeFile(t, filepath.Join(dir, "docs", "api", "README.md"), "# API\n")
	return configPath
}

// run parses args like main does and returns stdout, the requested exit code and the
// command error.
func run(t *testing.T, args ...string) (string, int, error) {
	t.Helper()
	code := 0
	prev := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = prev })

	var buf bytes.Buffer
	global := &Global{Out: &buf}
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitenav"),
		kong.Vars{"version": "test"},
		kong.Bind(global),
	)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = ctx.Run(global, cli)
	return buf.String(), code, err
}

func TestCheckValidSite(t *testing.T) {
	newSite(t, pandoraConfig)

	out, code, err := run(t)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Checking navigation in: docs/.vuepress/config.yml")
	assert.Contains(t, out, "Document set: docs (4 pages)")
	assert.Contains(t, out, "Navigation is valid!")
}

func TestCheckBrokenLinkExitsTwo(t *testing.T) {
	newSite(t, pandoraConfig+"    - /concept\n")

	out, code, err := run(t, "check")
	require.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.Contains(t, out, "/concept")
	assert.Contains(t, out, "Navigation has errors.")
}

func TestCheckWarningsExitOneUnlessQuiet(t *testing.T) {
	cfg := pandoraConfig + "  sidebarDepth: 3\n"
	newSite(t, cfg)

	_, code, err := run(t, "check")
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	_, code, err = run(t, "check", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestCheckJSON(t *testing.T) {
	newSite(t, pandoraConfig+"    - /concept\n")

	out, code, err := run(t, "check", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, 2, code)

	var report navcheck.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Resolved)
	assert.Equal(t, 4, report.Documents)
	assert.Equal(t, 1, report.ErrorCount)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "sidebar-resolves", report.Issues[0].Rule)
}

func TestCheckNoDocs(t *testing.T) {
	newSite(t, pandoraConfig+"    - /concept\n")

	out, code, err := run(t, "check", "--no-docs")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "link resolution skipped")
}

func TestCheckWithoutConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t, "check")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestCheckLegacyConfigOnly(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "docs", ".vuepress", "config.js"), "module.exports = {}\n")

	_, _, err := run(t, "check")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestInitThenFmtCheck(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "site", "config.yml")

	out, _, err := run(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized")
	require.FileExists(t, path)

	_, _, err = run(t, "init", path)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	_, code, err := run(t, "fmt", "--check", path)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestFmtRewrites(t *testing.T) {
	configPath := newSite(t, "themeConfig:\n    sidebar: [ /basics, ['/api/', 'API'] ]\nbase: ${BASE}\n")

	_, code, err := run(t, "fmt", "--check", configPath)
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	out, _, err := run(t, "fmt", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "${BASE}")
	assert.Contains(t, out, "- /basics")

	_, _, err = run(t, "fmt", "--write", configPath)
	require.NoError(t, err)
	written, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, out, string(written))

	_, _, err = run(t, "fmt", "--write", "--to", "json", configPath)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(filepath.Dir(configPath), "config.json"))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "${BASE}", decoded["base"])
}

func TestTree(t *testing.T) {
	newSite(t, pandoraConfig)

	out, _, err := run(t, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Pandora 3 (/pandora3/)")
	assert.Contains(t, out, "Sidebar")
	assert.Contains(t, out, "The basics")
}

func TestPagesJSON(t *testing.T) {
	newSite(t, pandoraConfig)

	out, _, err := run(t, "pages", "--format", "json")
	require.NoError(t, err)

	var rows []pageRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 4)
	byRoute := map[string]pageRow{}
	for _, r := range rows {
		byRoute[r.Route] = r
	}
	require.Contains(t, byRoute, "/basics.html")
	assert.Equal(t, "The basics", byRoute["/basics.html"].Title)
	assert.Equal(t, "https://github.com/PandoraTeam/pandora3-docs/edit/master/docs/basics.md", byRoute["/basics.html"].EditLink)
	assert.Equal(t, "api/README.md", byRoute["/api/"].File)
}

func TestPagesLastUpdatedFromConfig(t *testing.T) {
	configPath := newSite(t, "themeConfig:\n  lastUpdated: true\n  sidebar: [/basics]\n")
	root := filepath.Dir(filepath.Dir(filepath.Dir(configPath)))

	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	w, err := repo.Worktree()
	require.NoError(t, err)
	_, err = w.Add("docs")
	require.NoError(t, err)
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err = w.Commit("Add docs", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: when},
	})
	require.NoError(t, err)

	out, _, err := run(t, "pages", "--format", "json")
	require.NoError(t, err)
	var rows []pageRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 4)
	for _, r := range rows {
		require.NotNil(t, r.LastUpdated, r.Route)
		assert.True(t, when.Equal(*r.LastUpdated), r.Route)
	}

	writeFile(t, configPath, "themeConfig:\n  sidebar: [/basics]\n")
	out, _, err = run(t, "pages", "--format", "json")
	require.NoError(t, err)
	rows = nil
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	for _, r := range rows {
		assert.Nil(t, r.LastUpdated, r.Route)
	}
}

func TestFmtKeepsUnknownKeys(t *testing.T) {
	configPath := newSite(t, "dest: public\nplugins:\n  - back-to-top\nthemeConfig:\n  search: false\n  sidebar: [/basics]\n")

	_, _, err := run(t, "fmt", "--write", configPath)
	require.NoError(t, err)
	written, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "dest: public")
	assert.Contains(t, string(written), "- back-to-top")
	assert.Contains(t, string(written), "search: false")

	_, _, err = run(t, "fmt", "--write", "--to", "json", configPath)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(filepath.Dir(configPath), "config.json"))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{"back-to-top"}, decoded["plugins"])
	assert.Equal(t, false, decoded["themeConfig"].(map[string]any)["search"])
}

func TestPagesTable(t *testing.T) {
	newSite(t, pandoraConfig)

	out, _, err := run(t, "pages", "--format", "md", "--exclude", "api/*")
	require.NoError(t, err)
	lower := strings.ToLower(out)
	assert.Contains(t, lower, "| route")
	assert.Contains(t, out, "/getting-started.html")
	assert.NotContains(t, out, "/api/")
	assert.Contains(t, lower, "3 pages")
}
