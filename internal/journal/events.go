package journal

import (
	"encoding/json"
	"time"

	"github.com/ScorpionResponse/pelican/internal/foundation/errors"
)

// Event type names.
const (
	TypeBuildStarted   = "BuildStarted"
	TypePhaseCompleted = "PhaseCompleted"
	TypeBuildCompleted = "BuildCompleted"
	TypeBuildFailed    = "BuildFailed"
)

// BuildStarted is emitted when a build begins.
type BuildStarted struct {
	BaseEvent
	ContentPath string   `json:"content_path"`
	OutputPath  string   `json:"output_path"`
	Generators  []string `json:"generators"`
	Revision    string   `json:"revision,omitempty"`
}

// NewBuildStarted creates a BuildStarted event.
func NewBuildStarted(buildID, contentPath, outputPath string, generators []string, revision string) (*BuildStarted, error) {
	e := &BuildStarted{ContentPath: contentPath, OutputPath: outputPath, Generators: generators, Revision: revision}
	payload := map[string]any{
		"content_path": contentPath,
		"output_path":  outputPath,
		"generators":   generators,
		"revision":     revision,
	}
	return e, e.stamp(buildID, TypeBuildStarted, payload)
}

// PhaseCompleted is emitted after the context or output phase finished.
type PhaseCompleted struct {
	BaseEvent
	Phase    string        `json:"phase"`
	Duration time.Duration `json:"duration_ms"`
}

// NewPhaseCompleted creates a PhaseCompleted event.
func NewPhaseCompleted(buildID, phase string, duration time.Duration) (*PhaseCompleted, error) {
	e := &PhaseCompleted{Phase: phase, Duration: duration}
	payload := map[string]any{"phase": phase, "duration_ms": duration.Milliseconds()}
	return e, e.stamp(buildID, TypePhaseCompleted, payload)
}

// BuildCompleted is emitted when a build succeeded.
type BuildCompleted struct {
	BaseEvent
	FilesWritten int           `json:"files_written"`
	FilesSkipped int           `json:"files_skipped"`
	Duration     time.Duration `json:"duration_ms"`
}

// NewBuildCompleted creates a BuildCompleted event.
func NewBuildCompleted(buildID string, written, skipped int, duration time.Duration) (*BuildCompleted, error) {
	e := &BuildCompleted{FilesWritten: written, FilesSkipped: skipped, Duration: duration}
	payload := map[string]any{"files_written": written, "files_skipped": skipped, "duration_ms": duration.Milliseconds()}
	return e, e.stamp(buildID, TypeBuildCompleted, payload)
}

// BuildFailed is emitted when a build ended with an error.
type BuildFailed struct {
	BaseEvent
	Phase     string `json:"phase"`
	Generator string `json:"generator,omitempty"`
	Error     string `json:"error"`
}

// NewBuildFailed creates a BuildFailed event.
func NewBuildFailed(buildID, phase, generator string, cause error) (*BuildFailed, error) {
	e := &BuildFailed{Phase: phase, Generator: generator}
	if cause != nil {
		e.Error = cause.Error()
	}
	payload := map[string]any{"phase": phase, "generator": generator, "error": e.Error}
	return e, e.stamp(buildID, TypeBuildFailed, payload)
}

func (e *BaseEvent) stamp(buildID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.JournalError("failed to marshal " + eventType + " payload").
			WithCause(err).
			WithContext("build_id", buildID).
			Build()
	}
	e.EventBuildID = buildID
	e.EventType = eventType
	e.EventTimestamp = time.Now()
	e.EventPayload = data
	return nil
}
