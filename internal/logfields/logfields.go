package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeyRoute      = "route"
	KeyLink       = "link"
	KeyRule       = "rule"
	KeyLocation   = "location"
	KeyRunID      = "run_id"
	KeyReason     = "reason"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeySubject    = "subject"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Route(r string) slog.Attr        { return slog.String(KeyRoute, r) }
func Link(l string) slog.Attr         { return slog.String(KeyLink, l) }
func Rule(r string) slog.Attr         { return slog.String(KeyRule, r) }
func Location(l string) slog.Attr     { return slog.String(KeyLocation, l) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
