package navcheck

import "time"

// Report is the serialized form of a Result. The JSON formatter writes it and the watch
// command publishes it.
type Report struct {
	RunID          string        `json:"run_id,omitempty"`
	ConfigPath     string        `json:"config_path"`
	DocsRoot       string        `json:"docs_root,omitempty"`
	CheckedAt      time.Time     `json:"checked_at"`
	Resolved       bool          `json:"resolved"`
	Documents      int           `json:"documents"`
	NavEntries     int           `json:"nav_entries"`
	SidebarEntries int           `json:"sidebar_entries"`
	ErrorCount     int           `json:"error_count"`
	WarningCount   int           `json:"warning_count"`
	InfoCount      int           `json:"info_count"`
	Issues         []ReportIssue `json:"issues"`
}

// ReportIssue represents a single issue in a Report.
type ReportIssue struct {
	Location    string `json:"location"`
	Severity    string `json:"severity"`
	Rule        string `json:"rule"`
	Message     string `json:"message"`
	Explanation string `json:"explanation,omitempty"`
	Fix         string `json:"fix,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Target names what was checked.
type Target struct {
	ConfigPath string
	DocsRoot   string
	RunID      string
}

// NewReport projects result into a Report stamped with now.
func NewReport(result *Result, target Target, now time.Time) Report {
	report := Report{
		RunID:          target.RunID,
		ConfigPath:     target.ConfigPath,
		DocsRoot:       target.DocsRoot,
		CheckedAt:      now.UTC(),
		Resolved:       result.Resolved,
		Documents:      result.Documents,
		NavEntries:     result.NavEntries,
		SidebarEntries: result.SidebarEntries,
		ErrorCount:     result.ErrorCount(),
		WarningCount:   result.WarningCount(),
		InfoCount:      result.InfoCount(),
		Issues:         make([]ReportIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		report.Issues = append(report.Issues, ReportIssue{
			Location:    issue.Location,
			Severity:    issue.Severity.String(),
			Rule:        issue.Rule,
			Message:     issue.Message,
			Explanation: issue.Explanation,
			Fix:         issue.Fix,
			Link:        issue.Link,
		})
	}
	return report
}
