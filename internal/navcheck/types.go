// Package navcheck validates a site configuration's navigation against the pages that
// actually exist.
package navcheck

import (
	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/docset"
)

// Severity indicates the importance level of a finding.
type Severity int

const (
	// SeverityInfo marks patterns the format tolerates, such as duplicate sidebar entries.
	SeverityInfo Severity = iota
	// SeverityWarning marks settings that are accepted but probably not what was meant.
	SeverityWarning
	// SeverityError marks navigation that is broken.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue is a single finding.
type Issue struct {
	Location    string   // Config location, e.g. "themeConfig.sidebar[2]", or a page path
	Severity    Severity // Issue severity level
	Rule        string   // Rule identifier, e.g. "nav-link-resolves"
	Message     string   // Brief description of the issue
	Explanation string   // Detailed explanation with context
	Fix         string   // Suggested fix
	Link        string   // Offending link or path, when there is one
}

// Result contains all issues found by one check.
type Result struct {
	Issues []Issue

	NavEntries     int  // Nav entries visited, dropdown items included
	SidebarEntries int  // Sidebar entries visited, group children included
	Documents      int  // Pages in the document set
	Resolved       bool // Whether links were checked against a document set
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	return r.WarningCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

// InfoCount returns the number of informational issues.
func (r *Result) InfoCount() int {
	return r.count(SeverityInfo)
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// ByRule returns the issues reported by the named rule.
func (r *Result) ByRule(name string) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Rule == name {
			out = append(out, issue)
		}
	}
	return out
}

// Input is what every rule inspects. Docs is nil when no document set is available, in
// which case rules that resolve links report nothing.
type Input struct {
	Config *config.SiteConfig
	Docs   *docset.Set
}

// Rule is one navigation check.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Check inspects the input and returns any issues found.
	Check(in *Input) []Issue
}

// Config contains configuration for the checker.
type Config struct {
	// Quiet drops warnings and info issues, only keeping errors.
	Quiet bool

	// Disable lists rule names to skip.
	Disable []string
}
