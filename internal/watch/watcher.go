package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ferrors "github.com/ScorpionResponse/pelican/internal/foundation/errors"
	"github.com/ScorpionResponse/pelican/internal/logfields"
	"github.com/ScorpionResponse/pelican/internal/metrics"
	"github.com/ScorpionResponse/pelican/internal/settings"
)

// DefaultInterval is the pause between polls.
const DefaultInterval = 500 * time.Millisecond

// Failure policies for builds that return an error.
const (
	PolicyAbort    = "abort"
	PolicyContinue = "continue"
)

// Backends select the Detector implementation.
const (
	BackendPoll   = "poll"
	BackendNotify = "notify"
)

// Runner performs one build.
type Runner interface {
	Run(ctx context.Context) error
}

type watched struct {
	name     string
	detector Detector
}

// Watcher polls the content and theme trees and runs a build after every
// detected change. Builds never overlap.
type Watcher struct {
	runner   Runner
	trees    []watched
	interval time.Duration
	policy   string
	backend  string
	exclude  []string
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the pause between polls.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithFailurePolicy selects whether a failed build ends the loop (abort)
// or is logged and watching goes on (continue).
func WithFailurePolicy(policy string) Option {
	return func(w *Watcher) { w.policy = strings.ToLower(policy) }
}

// WithBackend selects the poll or notify detector.
func WithBackend(backend string) Option {
	return func(w *Watcher) { w.backend = strings.ToLower(backend) }
}

// WithOutputPath keeps the output directory out of both watched trees, so
// files a build writes there never trigger another build.
func WithOutputPath(p string) Option {
	return func(w *Watcher) {
		if p != "" {
			w.exclude = append(w.exclude, p)
		}
	}
}

// WithRecorder records rebuild triggers.
func WithRecorder(r metrics.Recorder) Option {
	return func(w *Watcher) {
		if r != nil {
			w.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// OptionsFromSettings reads AUTORELOAD_INTERVAL, AUTORELOAD_BACKEND and
// WATCH_FAILURE_POLICY.
func OptionsFromSettings(s settings.Settings) []Option {
	return []Option{
		WithInterval(s.Duration(settings.KeyAutoreloadInterval, DefaultInterval)),
		WithBackend(s.String(settings.KeyAutoreloadBackend)),
		WithFailurePolicy(s.String(settings.KeyWatchFailurePolicy)),
	}
}

// New builds a watcher over the content tree (files with a markup
// extension) and the theme tree (all files).
func New(runner Runner, contentPath string, markup []string, themePath string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		runner:   runner,
		interval: DefaultInterval,
		policy:   PolicyAbort,
		backend:  BackendPoll,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	switch w.policy {
	case "", PolicyAbort:
		w.policy = PolicyAbort
	case PolicyContinue:
	default:
		return nil, ferrors.ValidationError(fmt.Sprintf("unknown %s %q", settings.KeyWatchFailurePolicy, w.policy)).
			WithContext("setting", settings.KeyWatchFailurePolicy).
			Build()
	}

	exts := make([]string, 0, len(markup))
	for _, m := range markup {
		exts = append(exts, strings.ToLower(strings.TrimPrefix(m, ".")))
	}
	trees := []Tree{
		{Name: "content", Root: contentPath, Extensions: exts, Exclude: w.exclude},
		{Name: "theme", Root: themePath, Exclude: w.exclude},
	}
	for _, t := range trees {
		d, err := w.newDetector(t)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		w.trees = append(w.trees, watched{name: t.Name, detector: d})
	}
	return w, nil
}

func (w *Watcher) newDetector(t Tree) (Detector, error) {
	switch w.backend {
	case "", BackendPoll:
		return NewPollDetector(t), nil
	case BackendNotify:
		return NewNotifyDetector(t)
	default:
		return nil, ferrors.ValidationError(fmt.Sprintf("unknown %s %q", settings.KeyAutoreloadBackend, w.backend)).
			WithContext("setting", settings.KeyAutoreloadBackend).
			Build()
	}
}

// Tick polls every tree and, if any changed, runs one build. It reports
// whether a build ran.
func (w *Watcher) Tick(ctx context.Context) (bool, error) {
	var modified []string
	for _, t := range w.trees {
		changed, err := t.detector.Changed(ctx)
		if err != nil {
			return false, ferrors.RuntimeError("could not poll the "+t.name+" tree").
				WithCause(err).
				WithContext("tree", t.name).
				Build()
		}
		if changed {
			modified = append(modified, t.name)
			w.recorder.IncRebuildTrigger(t.name)
		}
	}
	if len(modified) == 0 {
		return false, nil
	}
	w.logger.Info("-> Modified: "+strings.Join(modified, ", ")+". re-generating...", logfields.Tree(strings.Join(modified, ",")))
	return true, w.runner.Run(ctx)
}

// Loop ticks until ctx is cancelled, sleeping between ticks. Cancellation
// returns nil. A failed build ends the loop under the abort policy.
func (w *Watcher) Loop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		_, err := w.Tick(ctx)
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			if w.policy == PolicyAbort {
				return err
			}
			w.logger.Error("Build failed, waiting for the next change", logfields.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(w.interval):
		}
	}
}

// Close releases the detectors.
func (w *Watcher) Close() error {
	var errs []error
	for _, t := range w.trees {
		if err := t.detector.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Watch runs the watch loop for runner until ctx is cancelled.
func Watch(ctx context.Context, runner Runner, contentPath string, markup []string, themePath string, opts ...Option) error {
	w, err := New(runner, contentPath, markup, themePath, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	return w.Loop(ctx)
}
