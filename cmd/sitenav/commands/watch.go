package commands

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/navcheck"
	"git.home.luguber.info/inful/sitenav/internal/publish"
	"git.home.luguber.info/inful/sitenav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	SiteFlags `embed:""`

	Debounce    time.Duration `default:"500ms" help:"Quiet period after a file change before checking"`
	Interval    time.Duration `help:"Also check on this interval, e.g. 10m (0 disables)" env:"SITENAV_INTERVAL"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address, e.g. :9090" env:"SITENAV_METRICS_ADDR"`
	NatsURL     string        `name:"nats-url" help:"Publish every report to this NATS server" env:"SITENAV_NATS_URL"`
	NatsSubject string        `name:"nats-subject" default:"sitenav.reports" help:"NATS subject for reports" env:"SITENAV_NATS_SUBJECT"`
	Format      string        `short:"f" default:"text" help:"Output format of each report (text or json)" enum:"text,json"`
	Quiet       bool          `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	Disable     []string      `help:"Rules to skip, e.g. head-tags"`
}

func (w *WatchCmd) Run(g *Global, _ *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	configPath, err := w.configPath()
	if err != nil {
		return err
	}
	docsRoot := w.docsRoot(configPath)

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var metricsServer *metrics.Server
	if w.MetricsAddr != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		if metricsServer, err = metrics.Serve(w.MetricsAddr, reg); err != nil {
			return err
		}
	}

	var publisher publish.Publisher = publish.NoopPublisher{}
	if w.NatsURL != "" {
		if publisher, err = publish.NewNATSPublisher(w.NatsURL, w.NatsSubject); err != nil {
			return err
		}
	}
	defer publisher.Close()

	formatter := navcheck.NewFormatter(w.Format)
	var outMu sync.Mutex
	runner := watch.NewRunner(watch.RunnerOptions{
		ConfigPath: configPath,
		DocsRoot:   docsRoot,
		Checker:    navcheck.NewChecker(&navcheck.Config{Quiet: w.Quiet, Disable: w.Disable}),
		Recorder:   recorder,
		Publisher:  publisher,
		OnReport: func(result *navcheck.Result, report navcheck.Report) {
			outMu.Lock()
			defer outMu.Unlock()
			target := navcheck.Target{ConfigPath: relPath(configPath), DocsRoot: relPath(docsRoot), RunID: report.RunID}
			if err := formatter.Format(g.out(), result, target); err != nil {
				slog.Error("Failed to write report", logfields.Error(err))
			}
		},
	})
	service := watch.NewService(runner)

	watcher, err := watch.NewWatcher(configPath, docsRoot, w.Debounce, service.Trigger)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create file watcher").Build()
	}
	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Stop()
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to start file watcher").Build()
	}
	defer func() { _ = watcher.Stop() }()

	var scheduler *watch.Scheduler
	if w.Interval > 0 {
		if scheduler, err = watch.NewScheduler(); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create scheduler").Build()
		}
		if _, err := scheduler.SchedulePeriodicCheck(w.Interval, service.Trigger); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid check interval").Build()
		}
		scheduler.Start()
	}

	slog.Info("Watching for changes", logfields.Path(configPath), slog.String("docs", docsRoot))
	err = service.Run(ctx)

	slog.Info("Shutdown signal received, stopping watch...")
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if scheduler != nil {
		if serr := scheduler.Stop(stopCtx); serr != nil {
			slog.Warn("Failed to stop scheduler", logfields.Error(serr))
		}
	}
	if metricsServer != nil {
		if serr := metricsServer.Shutdown(stopCtx); serr != nil {
			slog.Warn("Failed to stop metrics server", logfields.Error(serr))
		}
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
