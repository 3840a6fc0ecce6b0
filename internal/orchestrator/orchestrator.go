package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	ferrors "github.com/ScorpionResponse/pelican/internal/foundation/errors"
	"github.com/ScorpionResponse/pelican/internal/generators"
	"github.com/ScorpionResponse/pelican/internal/journal"
	"github.com/ScorpionResponse/pelican/internal/logfields"
	"github.com/ScorpionResponse/pelican/internal/metrics"
	"github.com/ScorpionResponse/pelican/internal/notify"
	"github.com/ScorpionResponse/pelican/internal/paths"
	"github.com/ScorpionResponse/pelican/internal/readers"
	"github.com/ScorpionResponse/pelican/internal/settings"
	"github.com/ScorpionResponse/pelican/internal/writer"
)

// Build phases.
const (
	PhaseContext = "context"
	PhaseCleanup = "cleanup"
	PhaseOutput  = "output"
)

// Options carries the collaborators of an Orchestrator. Zero values select
// the defaults: the standard generator pipeline, no metrics, no journal and
// no notifications.
type Options struct {
	Registry      *generators.Registry
	Readers       *readers.Registry
	BundledThemes string
	Recorder      metrics.Recorder
	Journal       journal.Store
	Publisher     notify.Publisher
	Logger        *slog.Logger
}

// Orchestrator owns the settings and resolved paths of a site and runs builds.
type Orchestrator struct {
	settings     settings.Settings
	paths        paths.Resolved
	markup       []string
	deleteOutput bool

	registry  *generators.Registry
	readers   *readers.Registry
	recorder  metrics.Recorder
	journal   journal.Store
	publisher notify.Publisher
	logger    *slog.Logger
}

// New resolves the content, theme and output paths from s and migrates
// deprecated settings. s is owned by the Orchestrator from now on.
func New(s settings.Settings, opts Options) (*Orchestrator, error) {
	if s == nil {
		s = settings.Defaults()
	}
	o := &Orchestrator{
		settings:  s,
		registry:  opts.Registry,
		readers:   opts.Readers,
		recorder:  opts.Recorder,
		journal:   opts.Journal,
		publisher: opts.Publisher,
		logger:    opts.Logger,
	}
	if o.registry == nil {
		o.registry = generators.Default()
	}
	if o.readers == nil {
		o.readers = readers.NewRegistry()
	}
	if o.recorder == nil {
		o.recorder = metrics.NoopRecorder{}
	}
	if o.publisher == nil {
		o.publisher = notify.NopPublisher{}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	resolved, err := paths.Resolve(s.String(settings.KeyPath), s.String(settings.KeyTheme), s.String(settings.KeyOutputPath), opts.BundledThemes)
	if err != nil {
		return nil, err
	}
	o.paths = resolved
	s[settings.KeyPath] = resolved.Content
	s[settings.KeyTheme] = resolved.Theme
	s[settings.KeyOutputPath] = resolved.Output

	var markup []string
	for _, m := range s.Strings(settings.KeyMarkup) {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			markup = append(markup, m)
		}
	}
	usable, missing := o.readers.Enabled(markup)
	for _, m := range missing {
		o.logger.Warn("No reader available for markup "+m+", skipping", logfields.Setting(settings.KeyMarkup), logfields.Value(m))
	}
	o.markup = usable
	o.deleteOutput = s.Bool(settings.KeyDeleteOutputDirectory)

	settings.MigrateWithLogger(s, o.logger)
	return o, nil
}

// Settings returns the migrated settings.
func (o *Orchestrator) Settings() settings.Settings { return o.settings }

// Paths returns the resolved paths.
func (o *Orchestrator) Paths() paths.Resolved { return o.paths }

// Markup returns the extensions that will be read.
func (o *Orchestrator) Markup() []string { return o.markup }

// Pipeline returns the names of the generators a build will run.
func (o *Orchestrator) Pipeline() []string { return o.registry.Names(o.settings) }

// buildRun tracks one Run for reporting.
type buildRun struct {
	id        string
	start     time.Time
	revision  string
	phase     string
	generator string
	written   int
	skipped   int
	logger    *slog.Logger
}

// Run performs one full build: context phase, output cleanup, output phase.
// The first generator error ends the build and is returned as a
// generation error naming the generator and phase.
func (o *Orchestrator) Run(ctx context.Context) (err error) {
	b := &buildRun{id: uuid.NewString(), start: time.Now()}
	b.logger = o.logger.With(logfields.BuildID(b.id))

	// generators get their own copies; the migrated settings stay untouched
	runSettings := o.settings.Clone()
	bctx := generators.Context(o.settings.Clone())
	b.revision = contentRevision(o.paths.Content)
	if b.revision != "" {
		bctx["CONTENT_REVISION"] = b.revision
	}
	bctx["BUILD_ID"] = b.id

	cfg := generators.Config{
		Context:               bctx,
		Settings:              runSettings,
		ContentPath:           o.paths.Content,
		ThemePath:             o.paths.Theme,
		OutputPath:            o.paths.Output,
		Markup:                o.markup,
		DeleteOutputDirectory: o.deleteOutput,
		Readers:               o.readers,
	}
	pipeline, err := o.registry.Build(runSettings, cfg)
	if err != nil {
		return ferrors.InternalError("could not assemble generator pipeline").WithCause(err).Build()
	}

	names := make([]string, len(pipeline))
	for i, g := range pipeline {
		names[i] = g.Name()
	}
	o.appendEvent(ctx, b, func() (journal.Event, error) {
		return journal.NewBuildStarted(b.id, o.paths.Content, o.paths.Output, names, b.revision)
	})
	defer func() { o.finish(ctx, b, err) }()

	if err := o.contextPhase(ctx, b, pipeline); err != nil {
		return err
	}

	b.phase, b.generator = PhaseCleanup, ""
	if o.deleteOutput {
		if CanEraseOutput(o.paths.Content, o.paths.Output) {
			b.logger.Info("Deleting output directory", logfields.Path(o.paths.Output))
			if err := CleanOutputDir(o.paths.Output); err != nil {
				return ferrors.FileSystemError("could not clean output directory").
					WithCause(err).
					WithContext("path", o.paths.Output).
					Build()
			}
		} else {
			b.logger.Debug("Output directory overlaps content, not deleting", logfields.Path(o.paths.Output))
		}
	}

	w := writer.New(o.paths.Output, runSettings)
	if err := o.outputPhase(ctx, b, pipeline, w); err != nil {
		return err
	}
	b.written, b.skipped = w.Counts()
	return nil
}

func (o *Orchestrator) contextPhase(ctx context.Context, b *buildRun, pipeline []generators.Generator) error {
	b.phase = PhaseContext
	start := time.Now()
	for _, g := range pipeline {
		cg, ok := g.(generators.ContextGenerator)
		if !ok {
			continue
		}
		b.generator = g.Name()
		if err := o.runGenerator(b, g.Name(), PhaseContext, func() error { return cg.GenerateContext(ctx) }); err != nil {
			return err
		}
	}
	o.phaseDone(ctx, b, PhaseContext, time.Since(start))
	return nil
}

func (o *Orchestrator) outputPhase(ctx context.Context, b *buildRun, pipeline []generators.Generator, w *writer.Writer) error {
	b.phase = PhaseOutput
	start := time.Now()
	for _, g := range pipeline {
		og, ok := g.(generators.OutputGenerator)
		if !ok {
			continue
		}
		b.generator = g.Name()
		if err := o.runGenerator(b, g.Name(), PhaseOutput, func() error { return og.GenerateOutput(ctx, w) }); err != nil {
			return err
		}
	}
	o.phaseDone(ctx, b, PhaseOutput, time.Since(start))
	return nil
}

func (o *Orchestrator) runGenerator(b *buildRun, name, phase string, fn func() error) error {
	start := time.Now()
	err := fn()
	o.recorder.ObserveGeneratorDuration(name, phase, time.Since(start))
	if err != nil {
		result := metrics.ResultFailed
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			result = metrics.ResultCanceled
		}
		o.recorder.IncGeneratorResult(name, result)
		return ferrors.GenerationError(fmt.Sprintf("generator %s failed during %s phase", name, phase)).
			WithCause(err).
			WithContext("generator", name).
			WithContext("phase", phase).
			Build()
	}
	o.recorder.IncGeneratorResult(name, metrics.ResultSuccess)
	b.logger.Debug("Generator finished", logfields.Generator(name), logfields.Phase(phase),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}

func (o *Orchestrator) phaseDone(ctx context.Context, b *buildRun, phase string, d time.Duration) {
	o.recorder.ObservePhaseDuration(phase, d)
	o.appendEvent(ctx, b, func() (journal.Event, error) { return journal.NewPhaseCompleted(b.id, phase, d) })
}

// finish records the outcome of a build in metrics, the journal and the
// notification channel. Failures there are logged, never returned.
func (o *Orchestrator) finish(ctx context.Context, b *buildRun, err error) {
	d := time.Since(b.start)
	o.recorder.ObserveBuildDuration(d)
	event := notify.BuildEvent{
		BuildID:      b.id,
		ContentPath:  o.paths.Content,
		OutputPath:   o.paths.Output,
		Revision:     b.revision,
		FilesWritten: b.written,
		DurationMS:   d.Milliseconds(),
	}
	switch {
	case err == nil:
		o.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		o.recorder.SetFilesWritten(b.written)
		o.appendEvent(ctx, b, func() (journal.Event, error) { return journal.NewBuildCompleted(b.id, b.written, b.skipped, d) })
		event.Status = notify.StatusSuccess
		b.logger.Info(fmt.Sprintf("Done: processed in %.2f seconds", d.Seconds()),
			logfields.Count(b.written), logfields.DurationMS(float64(d.Milliseconds())))
	default:
		outcome := metrics.BuildOutcomeFailed
		if errors.Is(err, context.Canceled) {
			outcome = metrics.BuildOutcomeCanceled
		}
		o.recorder.IncBuildOutcome(outcome)
		o.appendEvent(ctx, b, func() (journal.Event, error) { return journal.NewBuildFailed(b.id, b.phase, b.generator, err) })
		event.Status = notify.StatusFailed
		event.Error = err.Error()
	}
	// reporting must not be cut short by the cancellation that ended the build
	reportCtx := context.WithoutCancel(ctx)
	if perr := o.publisher.PublishBuild(reportCtx, event); perr != nil {
		b.logger.Warn("Could not publish build event", logfields.Error(perr))
	}
}

func (o *Orchestrator) appendEvent(ctx context.Context, b *buildRun, build func() (journal.Event, error)) {
	if o.journal == nil {
		return
	}
	e, err := build()
	if err == nil {
		err = o.journal.Append(context.WithoutCancel(ctx), e)
	}
	if err != nil {
		b.logger.Warn("Could not record build event", logfields.Error(err))
	}
}
