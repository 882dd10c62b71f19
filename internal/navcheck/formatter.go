package navcheck

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Formatter writes a check result for humans or machines.
type Formatter interface {
	Format(w io.Writer, result *Result, target Target) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result, target Target) error {
	p := &printer{w: w}

	p.printf("Checking navigation in: %s\n", target.ConfigPath)
	if result.Resolved {
		p.printf("Document set: %s (%d page%s)\n", target.DocsRoot, result.Documents, pluralize(result.Documents))
	} else {
		p.println("Document set: none (link resolution skipped)")
	}
	p.println(strings.Repeat("━", 60))
	p.println()

	for _, issue := range result.Issues {
		f.formatIssue(p, issue)
		p.println()
	}

	p.println(strings.Repeat("━", 60))
	p.println("Results:")
	p.printf("  %d nav entr%s, %d sidebar entr%s checked\n",
		result.NavEntries, pluralizeY(result.NavEntries),
		result.SidebarEntries, pluralizeY(result.SidebarEntries))

	if n := result.ErrorCount(); n > 0 {
		p.printf("  %d error%s (broken navigation)\n", n, pluralize(n))
	}
	if n := result.WarningCount(); n > 0 {
		p.printf("  %d warning%s (should fix)\n", n, pluralize(n))
	}
	if n := result.InfoCount(); n > 0 {
		p.printf("  %d info (tolerated)\n", n)
	}
	p.println()

	switch {
	case result.HasErrors():
		p.println("❌ Navigation has errors.")
		p.println("   Inspect: sitenav tree")
	case result.HasWarnings():
		p.println("⚠️  Navigation has warnings. Consider fixing before publishing.")
	case len(result.Issues) > 0:
		p.println("ℹ️  All issues are informational.")
	default:
		p.println("✨ Navigation is valid!")
	}
	p.println()
	return p.err
}

func (f *TextFormatter) formatIssue(p *printer, issue Issue) {
	var icon string
	switch issue.Severity {
	case SeverityError:
		icon = "✗"
	case SeverityWarning:
		icon = "⚠"
	case SeverityInfo:
		icon = "ℹ"
	}

	p.printf("%s %s [%s]\n", icon, issue.Location, issue.Rule)
	p.printf("  %s: %s\n", issue.Severity, issue.Message)

	if issue.Explanation != "" {
		for line := range strings.SplitSeq(strings.TrimSpace(issue.Explanation), "\n") {
			p.printf("  %s\n", line)
		}
	}
	if issue.Fix != "" {
		p.println()
		p.printf("  Fix: %s\n", issue.Fix)
	}
}

// JSONFormatter formats results as a Report.
type JSONFormatter struct {
	now func() time.Time
}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{now: time.Now}
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result, target Target) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewReport(result, target, f.now()))
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}

// printer remembers the first write error so formatting code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, args...)
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func pluralizeY(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}
