package config

// SiteConfig is the navigation configuration of a documentation site: site metadata,
// injected head tags and the theme options that describe the top bar and sidebar.
//
// Keys sitenav does not interpret (dest, plugins, themeConfig.search, ...) are kept in the
// Extra maps and written back unchanged.
type SiteConfig struct {
	Base        string         `yaml:"base,omitempty" json:"base,omitempty"`
	Title       string         `yaml:"title,omitempty" json:"title,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Head        []HeadTag      `yaml:"head,omitempty" json:"head,omitempty"`
	ThemeConfig ThemeConfig    `yaml:"themeConfig" json:"themeConfig"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// HeadTag is one `[tag, attrs]` (or `[tag, attrs, content]`) entry of the head list.
// Attribute values keep their scalar type: `async: true` stays a boolean.
type HeadTag struct {
	Tag     string
	Attrs   map[string]any
	Content string
}

// ThemeConfig holds the presentation options of the default documentation theme.
type ThemeConfig struct {
	Repo         string        `yaml:"repo,omitempty" json:"repo,omitempty"`
	RepoLabel    string        `yaml:"repoLabel,omitempty" json:"repoLabel,omitempty"`
	DocsRepo     string        `yaml:"docsRepo,omitempty" json:"docsRepo,omitempty"`
	DocsDir      string        `yaml:"docsDir,omitempty" json:"docsDir,omitempty"`
	DocsBranch   string        `yaml:"docsBranch,omitempty" json:"docsBranch,omitempty"`
	EditLinks    bool          `yaml:"editLinks,omitempty" json:"editLinks,omitempty"`
	EditLinkText string        `yaml:"editLinkText,omitempty" json:"editLinkText,omitempty"`
	LastUpdated  bool          `yaml:"lastUpdated,omitempty" json:"lastUpdated,omitempty"`
	Nav          []NavItem     `yaml:"nav,omitempty" json:"nav,omitempty"`
	SidebarDepth *int          `yaml:"sidebarDepth,omitempty" json:"sidebarDepth,omitempty"`
	Sidebar      []SidebarItem `yaml:"sidebar,omitempty" json:"sidebar,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// NavItem is a top bar entry. It either links somewhere or opens a dropdown of Items.
type NavItem struct {
	Text  string         `yaml:"text" json:"text"`
	Link  string         `yaml:"link,omitempty" json:"link,omitempty"`
	Items []NavItem      `yaml:"items,omitempty" json:"items,omitempty"`
	Extra map[string]any `yaml:",inline" json:"-"` // target, rel, ariaLabel, ...
}

// SidebarKind tells which of the three sidebar entry shapes an item was written in.
type SidebarKind int

const (
	// SidebarPath is a bare path string: '/basics'.
	SidebarPath SidebarKind = iota
	// SidebarTitled is a [path, title] pair: ['/api/', 'API'].
	SidebarTitled
	// SidebarGroup is a {title, children} record.
	SidebarGroup
)

func (k SidebarKind) String() string {
	switch k {
	case SidebarPath:
		return "path"
	case SidebarTitled:
		return "titled"
	case SidebarGroup:
		return "group"
	default:
		return "unknown"
	}
}

// SidebarItem is one sidebar entry. Fields beyond Kind are populated according to the
// shape: Path for paths, Path and Title for pairs, Title and Children (plus the optional
// Path, Collapsable, SidebarDepth and unmodelled Extra keys) for groups.
type SidebarItem struct {
	Kind         SidebarKind
	Path         string
	Title        string
	Collapsable  *bool
	SidebarDepth *int
	Children     []SidebarItem
	Extra        map[string]any
}

// PathItem returns a bare path sidebar entry.
func PathItem(path string) SidebarItem {
	return SidebarItem{Kind: SidebarPath, Path: path}
}

// TitledItem returns a [path, title] sidebar entry.
func TitledItem(path, title string) SidebarItem {
	return SidebarItem{Kind: SidebarTitled, Path: path, Title: title}
}

// GroupItem returns a sidebar group.
func GroupItem(title string, children ...SidebarItem) SidebarItem {
	return SidebarItem{Kind: SidebarGroup, Title: title, Children: children}
}

const (
	defaultBase         = "/"
	defaultSidebarDepth = 1
	defaultDocsBranch   = "master"
	defaultEditLinkText = "Edit this page"
	// MaxSidebarDepth is the deepest heading level the theme extracts into the sidebar.
	MaxSidebarDepth = 2
)

// BasePath returns base, defaulting to "/".
func (c *SiteConfig) BasePath() string {
	if c.Base == "" {
		return defaultBase
	}
	return c.Base
}

// Depth returns the configured sidebarDepth or the theme default of 1.
func (t ThemeConfig) Depth() int {
	if t.SidebarDepth == nil {
		return defaultSidebarDepth
	}
	return *t.SidebarDepth
}

// Branch returns the branch edit links point at.
func (t ThemeConfig) Branch() string {
	if t.DocsBranch == "" {
		return defaultDocsBranch
	}
	return t.DocsBranch
}

// EditLinkLabel returns the text shown for edit links.
func (t ThemeConfig) EditLinkLabel() string {
	if t.EditLinkText == "" {
		return defaultEditLinkText
	}
	return t.EditLinkText
}

// Depth returns the group's own sidebarDepth, falling back to global.
func (s SidebarItem) Depth(global int) int {
	if s.SidebarDepth != nil {
		return *s.SidebarDepth
	}
	return global
}

// IsCollapsable reports whether a group may be collapsed. Groups collapse by default.
func (s SidebarItem) IsCollapsable() bool {
	return s.Collapsable == nil || *s.Collapsable
}
