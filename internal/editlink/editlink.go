// Package editlink builds "Edit this page" URLs and repository links from theme metadata.
package editlink

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/config"
)

// Forge identifies the hosting service of a repository.
type Forge string

const (
	ForgeGitHub    Forge = "github"
	ForgeGitLab    Forge = "gitlab"
	ForgeBitbucket Forge = "bitbucket"
	// ForgeGeneric covers self-hosted services; edit URLs follow the GitHub layout.
	ForgeGeneric Forge = "generic"
)

const githubBaseURL = "https://github.com"

// ErrNoRepo is returned when neither docsRepo nor repo is set.
var ErrNoRepo = errors.New("no repository configured")

// Repo is a parsed repository reference.
type Repo struct {
	Forge    Forge
	BaseURL  string // Scheme and host, e.g. https://gitlab.com
	FullName string // owner/name, possibly with subgroups
}

// URL returns the repository's web URL.
func (r Repo) URL() string {
	return r.BaseURL + "/" + r.FullName
}

// ParseRepo accepts a GitHub shorthand ("owner/name") or a full http(s) URL.
func ParseRepo(repo string) (Repo, error) {
	repo = strings.TrimSpace(repo)
	if repo == "" {
		return Repo{}, ErrNoRepo
	}

	if !strings.Contains(repo, "://") {
		parts := strings.Split(repo, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" || strings.ContainsAny(repo, " \t") {
			return Repo{}, fmt.Errorf("repository %q is neither an owner/name shorthand nor a URL", repo)
		}
		return Repo{Forge: ForgeGitHub, BaseURL: githubBaseURL, FullName: strings.TrimSuffix(repo, ".git")}, nil
	}

	u, err := url.Parse(repo)
	if err != nil {
		return Repo{}, fmt.Errorf("repository URL %q: %w", repo, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Repo{}, fmt.Errorf("repository URL %q must use http or https", repo)
	}
	if u.Host == "" {
		return Repo{}, fmt.Errorf("repository URL %q has no host", repo)
	}
	fullName := strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git")
	if fullName == "" {
		return Repo{}, fmt.Errorf("repository URL %q has no path", repo)
	}

	host := strings.ToLower(u.Hostname())
	forge := ForgeGeneric
	switch {
	case strings.Contains(host, "github"):
		forge = ForgeGitHub
	case strings.Contains(host, "gitlab"):
		forge = ForgeGitLab
	case strings.Contains(host, "bitbucket"):
		forge = ForgeBitbucket
	}
	return Repo{Forge: forge, BaseURL: u.Scheme + "://" + u.Host, FullName: fullName}, nil
}

// RepoURL returns the web URL of themeConfig.repo, or "" when it is unset or malformed.
func RepoURL(theme config.ThemeConfig) string {
	r, err := ParseRepo(theme.Repo)
	if err != nil {
		return ""
	}
	return r.URL()
}

// Build returns the edit URL for the page at relPath (relative to the docs directory).
// It returns "" without error when edit links are disabled.
func Build(theme config.ThemeConfig, relPath string) (string, error) {
	if !theme.EditLinks {
		return "", nil
	}
	source := theme.DocsRepo
	if source == "" {
		source = theme.Repo
	}
	r, err := ParseRepo(source)
	if err != nil {
		return "", err
	}

	filePath := strings.TrimPrefix(path.Join(strings.Trim(theme.DocsDir, "/"), relPath), "/")
	branch := theme.Branch()
	base := r.URL()

	switch r.Forge {
	case ForgeGitLab:
		return fmt.Sprintf("%s/-/edit/%s/%s", base, branch, filePath), nil
	case ForgeBitbucket:
		return fmt.Sprintf("%s/src/%s/%s?mode=edit&spa=0&at=%s&fileviewer=file-view-default", base, branch, filePath, branch), nil
	default:
		return fmt.Sprintf("%s/edit/%s/%s", base, branch, filePath), nil
	}
}
