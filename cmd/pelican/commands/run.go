package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/ScorpionResponse/pelican/internal/journal"
	"github.com/ScorpionResponse/pelican/internal/logfields"
	"github.com/ScorpionResponse/pelican/internal/metrics"
	"github.com/ScorpionResponse/pelican/internal/notify"
	"github.com/ScorpionResponse/pelican/internal/orchestrator"
	"github.com/ScorpionResponse/pelican/internal/paths"
	"github.com/ScorpionResponse/pelican/internal/settings"
	"github.com/ScorpionResponse/pelican/internal/themes"
	"github.com/ScorpionResponse/pelican/internal/watch"
)

// watchable is implemented by runners that know which trees to watch.
type watchable interface {
	Paths() paths.Resolved
	Markup() []string
}

// Execute loads settings, builds the site once or, with --autoreload,
// keeps rebuilding until interrupted.
func Execute(ctx context.Context, c *CLI) error {
	s, err := settings.Load(c.SettingsFile())
	if err != nil {
		return err
	}
	c.Apply(s)
	return run(ctx, c.Autoreload, s)
}

func run(ctx context.Context, autoreload bool, s settings.Settings) error {
	opts, cleanup, err := collaborators(s)
	if err != nil {
		return err
	}
	defer cleanup()

	var stopMetrics func()
	if autoreload {
		if addr := s.String(settings.KeyMetricsAddr); addr != "" {
			reg := prom.NewRegistry()
			opts.Recorder = metrics.NewPrometheusRecorder(reg)
			stopMetrics = serveMetrics(addr, reg)
		}
	}
	if stopMetrics != nil {
		defer stopMetrics()
	}

	runner, err := orchestrator.ForSettings(s, opts)
	if err != nil {
		return err
	}
	if !autoreload {
		return runner.Run(ctx)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	content, theme, output := s.String(settings.KeyPath), s.String(settings.KeyTheme), s.String(settings.KeyOutputPath)
	markup := s.Strings(settings.KeyMarkup)
	if w, ok := runner.(watchable); ok {
		content, theme, output, markup = w.Paths().Content, w.Paths().Theme, w.Paths().Output, w.Markup()
	}
	wopts := append(watch.OptionsFromSettings(s), watch.WithRecorder(opts.Recorder), watch.WithOutputPath(output))
	if err := watch.Watch(ctx, runner, content, markup, theme, wopts...); err != nil {
		return err
	}
	slog.Warn("Keyboard interrupt, quitting.")
	return nil
}

// collaborators prepares the bundled theme directory, the optional build
// journal and the optional build notifications.
func collaborators(s settings.Settings) (orchestrator.Options, func(), error) {
	var opts orchestrator.Options
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if dir, err := themes.DefaultDir(); err != nil {
		slog.Warn("Bundled themes unavailable", logfields.Error(err))
	} else if opts.BundledThemes, err = themes.Install(dir); err != nil {
		slog.Warn("Could not install bundled themes", logfields.Path(dir), logfields.Error(err))
	}

	if p := s.String(settings.KeyBuildJournal); p != "" {
		store, err := journal.NewSQLiteStore(p)
		if err != nil {
			cleanup()
			return opts, nil, err
		}
		opts.Journal = store
		closers = append(closers, func() { _ = store.Close() })
	}

	if url := s.String(settings.KeyNATSURL); url != "" {
		pub, err := notify.NewNATSPublisher(url, s.String(settings.KeyNATSSubject))
		if err != nil {
			slog.Warn("Build notifications disabled", logfields.Setting(settings.KeyNATSURL), logfields.Error(err))
		} else {
			opts.Publisher = pub
			closers = append(closers, func() { _ = pub.Close() })
		}
	}
	return opts, cleanup, nil
}

// serveMetrics serves reg on addr in the background and returns a stop func.
func serveMetrics(addr string, reg *prom.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server stopped", logfields.Error(err))
		}
	}()
	slog.Info("Serving metrics", "addr", addr)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
