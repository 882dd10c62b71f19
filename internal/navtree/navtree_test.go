package navtree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/docset"
)

const basicsPage = `---
title: The Basics
---
# Basics

### Orphan detail

## Install

### From source

### With a package manager

## Configure
`

func intPtr(v int) *int { return &v }

func sampleDocs(t *testing.T) *docset.Set {
	t.Helper()
	basics, err := docset.ParseDocument("basics.md", []byte(basicsPage))
	require.NoError(t, err)
	api, err := docset.ParseDocument("api/README.md", []byte("# API\n\n## Router\n"))
	require.NoError(t, err)
	shallow, err := docset.ParseDocument("shallow.md", []byte("---\nsidebarDepth: 0\n---\n## Hidden\n"))
	require.NoError(t, err)
	return docset.NewSet("", []*docset.Document{basics, api, shallow})
}

func sampleConfig(depth *int) *config.SiteConfig {
	return &config.SiteConfig{
		Title: "Pandora 3",
		Base:  "/pandora3/",
		ThemeConfig: config.ThemeConfig{
			Nav: []config.NavItem{
				{Text: "Basics", Link: "/basics.html"},
				{Text: "More", Items: []config.NavItem{
					{Text: "GitHub", Link: "https://github.com/pandora"},
					{Text: "Missing", Link: "/missing.html"},
				}},
			},
			SidebarDepth: depth,
			Sidebar: []config.SidebarItem{
				config.PathItem("/basics"),
				config.TitledItem("/api/", "Reference"),
				{Kind: config.SidebarGroup, Title: "Extra", Collapsable: new(bool), SidebarDepth: intPtr(0), Children: []config.SidebarItem{
					config.PathItem("/api/"),
					config.PathItem("/shallow"),
					config.PathItem("/gone"),
				}},
			},
		},
	}
}

func titles(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Title)
	}
	return out
}

func TestBuildDefaultDepth(t *testing.T) {
	tree := Build(sampleConfig(nil), sampleDocs(t))

	require.Len(t, tree.Sidebar, 3)
	basics := tree.Sidebar[0]
	assert.Equal(t, "The Basics", basics.Title)
	assert.Equal(t, "/basics.html", basics.Route)
	assert.Equal(t, []string{"Install", "Configure"}, titles(basics.Children))
	assert.Equal(t, "/basics.html#install", basics.Children[0].Link)
	assert.Empty(t, basics.Children[0].Children)

	api := tree.Sidebar[1]
	assert.Equal(t, "Reference", api.Title)
	assert.Equal(t, []string{"Router"}, titles(api.Children))

	extra := tree.Sidebar[2]
	assert.True(t, extra.Group)
	assert.False(t, extra.Collapsable)
	assert.Equal(t, []string{"API", "Shallow", "/gone"}, titles(extra.Children))
	assert.Empty(t, extra.Children[0].Children, "group sidebarDepth 0 hides headings")
	assert.True(t, extra.Children[2].Missing)
}

func TestBuildDepthTwo(t *testing.T) {
	tree := Build(sampleConfig(intPtr(2)), sampleDocs(t))

	basics := tree.Sidebar[0]
	assert.Equal(t, []string{"Orphan detail", "Install", "Configure"}, titles(basics.Children))
	install := basics.Children[1]
	assert.Equal(t, []string{"From source", "With a package manager"}, titles(install.Children))
	assert.Equal(t, "/basics.html#from-source", install.Children[0].Link)
}

func TestBuildDepthClamped(t *testing.T) {
	deep := Build(sampleConfig(intPtr(5)), sampleDocs(t))
	two := Build(sampleConfig(intPtr(2)), sampleDocs(t))
	assert.Equal(t, two.Sidebar[0], deep.Sidebar[0])
}

func TestBuildNav(t *testing.T) {
	tree := Build(sampleConfig(nil), sampleDocs(t))

	require.Len(t, tree.Nav, 2)
	assert.False(t, tree.Nav[0].Missing)
	more := tree.Nav[1]
	assert.True(t, more.Group)
	assert.True(t, more.Children[0].External)
	assert.False(t, more.Children[0].Missing)
	assert.True(t, more.Children[1].Missing)

	missing := tree.Missing()
	require.Len(t, missing, 2)
	assert.Equal(t, "/missing.html", missing[0].Link)
	assert.Equal(t, "/gone", missing[1].Link)
}

func TestBuildWithoutDocuments(t *testing.T) {
	tree := Build(sampleConfig(nil), nil)
	assert.Empty(t, tree.Missing())
	assert.Equal(t, "/basics", tree.Sidebar[0].Title)
	assert.Empty(t, tree.Sidebar[0].Children)
	assert.Equal(t, "Reference", tree.Sidebar[1].Title)
}

func TestWrite(t *testing.T) {
	tree := Build(sampleConfig(nil), sampleDocs(t))

	var buf bytes.Buffer
	require.NoError(t, tree.Write(&buf))
	out := buf.String()

	assert.Contains(t, out, "Pandora 3 (/pandora3/)")
	assert.Contains(t, out, "Nav")
	assert.Contains(t, out, "Basics → /basics.html")
	assert.Contains(t, out, "GitHub → https://github.com/pandora (external)")
	assert.Contains(t, out, "Missing → /missing.html (missing)")
	assert.Contains(t, out, "Sidebar")
	assert.Contains(t, out, "Install → /basics.html#install")
	assert.Contains(t, out, "Extra (always open)")
	assert.Contains(t, out, "/gone → /gone (missing)")
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Build(&config.SiteConfig{}, nil).Write(&buf))
	assert.Equal(t, "/\n\nNav\n  (empty)\n\nSidebar\n  (empty)\n", buf.String())
}
