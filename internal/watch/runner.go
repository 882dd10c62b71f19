// Package watch re-runs navigation checks when the site configuration or its pages change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/docset"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/navcheck"
	"git.home.luguber.info/inful/sitenav/internal/publish"
)

// Trigger sources.
const (
	SourceStartup  = "startup"
	SourceFSNotify = "fsnotify"
	SourceSchedule = "schedule"
)

// Outcome describes one run.
type Outcome struct {
	RunID   string
	Skipped bool // Inputs were unchanged since the previous run
	Result  *navcheck.Result
	Report  navcheck.Report
}

// ReportFunc receives every completed (not skipped) run.
type ReportFunc func(result *navcheck.Result, report navcheck.Report)

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	ConfigPath string
	DocsRoot   string
	Docs       docset.Options
	Checker    *navcheck.Checker
	Recorder   metrics.Recorder
	Publisher  publish.Publisher
	OnReport   ReportFunc
}

// Runner performs check runs. Runs are serialized; a run whose inputs fingerprint matches the
// previous run is skipped.
type Runner struct {
	opts RunnerOptions
	now  func() time.Time

	mu      sync.Mutex
	lastKey string
}

// NewRunner fills unset options with defaults.
func NewRunner(opts RunnerOptions) *Runner {
	if opts.Checker == nil {
		opts.Checker = navcheck.NewChecker(nil)
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Publisher == nil {
		opts.Publisher = publish.NoopPublisher{}
	}
	if opts.DocsRoot == "" {
		opts.DocsRoot = config.DefaultDocsRoot(opts.ConfigPath)
	}
	return &Runner{opts: opts, now: time.Now}
}

// Run executes one check triggered by source.
func (r *Runner) Run(ctx context.Context, source string) (Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Outcome{RunID: uuid.NewString()}
	log := slog.With(logfields.RunID(out.RunID), slog.String("source", source))
	r.opts.Recorder.IncTrigger(source)
	start := r.now()

	format, err := config.FormatFromPath(r.opts.ConfigPath)
	if err != nil {
		r.opts.Recorder.IncCheckOutcome(metrics.ResultFailed)
		return out, err
	}
	raw, err := os.ReadFile(r.opts.ConfigPath)
	if err != nil {
		r.opts.Recorder.IncCheckOutcome(metrics.ResultFailed)
		if errors.Is(err, fs.ErrNotExist) {
			return out, ferrors.NotFoundError("site config not found").WithContext("path", r.opts.ConfigPath).Build()
		}
		return out, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read site config").
			WithContext("path", r.opts.ConfigPath).
			Build()
	}
	docs, err := docset.Discover(ctx, r.opts.DocsRoot, r.opts.Docs)
	if err != nil {
		r.opts.Recorder.IncCheckOutcome(metrics.ResultFailed)
		return out, err
	}

	key := mdfp.CalculateFingerprintFromParts(string(raw), docs.Fingerprint())
	if key == r.lastKey {
		out.Skipped = true
		r.opts.Recorder.IncCheckOutcome(metrics.ResultSkipped)
		log.Debug("Inputs unchanged, skipping check")
		return out, nil
	}

	cfg, err := config.Parse(config.ExpandEnv(raw), format)
	if err != nil {
		r.opts.Recorder.IncCheckOutcome(metrics.ResultFailed)
		if c, ok := ferrors.AsClassified(err); ok {
			return out, c.WithContext("path", r.opts.ConfigPath)
		}
		return out, err
	}
	// Only inputs that produced a report count as seen, so a broken config is retried.
	r.lastKey = key
	if res, err := config.Normalize(cfg); err == nil {
		for _, w := range res.Warnings {
			log.Warn("Config normalization", logfields.Path(r.opts.ConfigPath), slog.String("warning", w))
		}
	}

	out.Result = r.opts.Checker.Check(cfg, docs)
	out.Report = navcheck.NewReport(out.Result, navcheck.Target{
		ConfigPath: r.opts.ConfigPath,
		DocsRoot:   r.opts.DocsRoot,
		RunID:      out.RunID,
	}, r.now())

	r.record(out.Result, r.now().Sub(start))
	r.publish(ctx, log, out.Report)
	if r.opts.OnReport != nil {
		r.opts.OnReport(out.Result, out.Report)
	}

	log.Info("Navigation check complete",
		logfields.Count(len(out.Result.Issues)),
		slog.Int("errors", out.Result.ErrorCount()),
		slog.Int("warnings", out.Result.WarningCount()))
	return out, nil
}

func (r *Runner) record(result *navcheck.Result, d time.Duration) {
	rec := r.opts.Recorder
	rec.ObserveCheckDuration(d)
	rec.SetDocuments(result.Documents)
	rec.SetIssues("error", result.ErrorCount())
	rec.SetIssues("warning", result.WarningCount())
	rec.SetIssues("info", result.InfoCount())
	switch {
	case result.HasErrors():
		rec.IncCheckOutcome(metrics.ResultFailed)
	case result.HasWarnings():
		rec.IncCheckOutcome(metrics.ResultWarning)
	default:
		rec.IncCheckOutcome(metrics.ResultSuccess)
	}
}

func (r *Runner) publish(ctx context.Context, log *slog.Logger, report navcheck.Report) {
	if _, noop := r.opts.Publisher.(publish.NoopPublisher); noop {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := r.opts.Publisher.Publish(pubCtx, report)
	r.opts.Recorder.IncPublishResult(err == nil)
	if err != nil {
		log.Error("Failed to publish report", logfields.Error(err))
	}
}
