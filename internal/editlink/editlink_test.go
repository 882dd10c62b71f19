package editlink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitenav/internal/config"
)

func TestParseRepo(t *testing.T) {
	tests := []struct {
		in      string
		want    Repo
		wantErr bool
	}{
		{in: "vuejs/vuepress", want: Repo{Forge: ForgeGitHub, BaseURL: "https://github.com", FullName: "vuejs/vuepress"}},
		{in: "https://gitlab.com/group/sub/docs.git", want: Repo{Forge: ForgeGitLab, BaseURL: "https://gitlab.com", FullName: "group/sub/docs"}},
		{in: "https://bitbucket.org/team/site/", want: Repo{Forge: ForgeBitbucket, BaseURL: "https://bitbucket.org", FullName: "team/site"}},
		{in: "https://git.example.com/docs/site", want: Repo{Forge: ForgeGeneric, BaseURL: "https://git.example.com", FullName: "docs/site"}},
		{in: "", wantErr: true},
		{in: "just-a-name", wantErr: true},
		{in: "a/b/c", wantErr: true},
		{in: "ftp://example.com/x", wantErr: true},
		{in: "https://github.com/", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRepo(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseRepo("  ")
	require.ErrorIs(t, err, ErrNoRepo)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		theme config.ThemeConfig
		rel   string
		want  string
	}{
		{
			name:  "github shorthand with docs dir",
			theme: config.ThemeConfig{Repo: "pandora/site", DocsDir: "docs", EditLinks: true},
			rel:   "basics.md",
			want:  "https://github.com/pandora/site/edit/master/docs/basics.md",
		},
		{
			name:  "docsRepo wins over repo",
			theme: config.ThemeConfig{Repo: "pandora/app", DocsRepo: "pandora/docs", DocsBranch: "main", EditLinks: true},
			rel:   "api/README.md",
			want:  "https://github.com/pandora/docs/edit/main/api/README.md",
		},
		{
			name:  "gitlab",
			theme: config.ThemeConfig{DocsRepo: "https://gitlab.com/pandora/docs", DocsDir: "/site/", EditLinks: true},
			rel:   "concept.md",
			want:  "https://gitlab.com/pandora/docs/-/edit/master/site/concept.md",
		},
		{
			name:  "bitbucket",
			theme: config.ThemeConfig{Repo: "https://bitbucket.org/pandora/docs", DocsBranch: "dev", EditLinks: true},
			rel:   "README.md",
			want:  "https://bitbucket.org/pandora/docs/src/dev/README.md?mode=edit&spa=0&at=dev&fileviewer=file-view-default",
		},
		{
			name:  "disabled",
			theme: config.ThemeConfig{Repo: "pandora/site"},
			rel:   "basics.md",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.theme, tt.rel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Build(config.ThemeConfig{EditLinks: true}, "x.md")
	require.ErrorIs(t, err, ErrNoRepo)
}

func TestRepoURL(t *testing.T) {
	assert.Equal(t, "https://github.com/pandora/site", RepoURL(config.ThemeConfig{Repo: "pandora/site"}))
	assert.Empty(t, RepoURL(config.ThemeConfig{}))
	assert.Empty(t, RepoURL(config.ThemeConfig{Repo: "nope"}))
}
