package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: 0,
		},
		{
			name:     "configuration error",
			err:      ConfigError("missing content path").Build(),
			expected: 7,
		},
		{
			name:     "generation error",
			err:      GenerationError("articles failed").Build(),
			expected: 11,
		},
		{
			name:     "explicit exit code wins over category",
			err:      GenerationError("articles failed").WithExitCode(42).Build(),
			expected: 42,
		},
		{
			name:     "wrapped classified error",
			err:      fmt.Errorf("run: %w", ConfigError("bad theme").Build()),
			expected: 7,
		},
		{
			name:     "unclassified error",
			err:      &customError{msg: "unknown error"},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_ReportLogsCritical(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewCLIErrorAdapter(false, logger)

	code := adapter.Report(ConfigError("Impossible to find the theme").WithContext("theme", "nope").Build())

	require.Equal(t, 7, code)
	out := buf.String()
	assert.Contains(t, out, "level=ERROR+4")
	assert.Contains(t, out, "Impossible to find the theme")
	assert.Contains(t, out, "theme=nope")
	assert.Contains(t, out, "category=config")
}

func TestCLIErrorAdapter_DebugReRaises(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewCLIErrorAdapter(true, slog.New(slog.NewTextHandler(&buf, nil)))
	original := stderrors.New("boom")

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, original)
	}()

	adapter.Report(original)
	t.Fatal("Report should have panicked in debug mode")
}

func TestCLIErrorAdapter_HandleErrorExits(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	var exited int
	adapter.exit = func(code int) { exited = code }

	adapter.HandleError(nil)
	assert.Equal(t, 0, exited)

	adapter.HandleError(stderrors.New("plain"))
	assert.Equal(t, 1, exited)
}

// customError is a test helper for unclassified errors
type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}
