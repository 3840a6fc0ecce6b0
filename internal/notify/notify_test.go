package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEventEncode(t *testing.T) {
	e := BuildEvent{
		BuildID:      "b1",
		Status:       StatusSuccess,
		ContentPath:  "/site/content",
		OutputPath:   "/site/output",
		FilesWritten: 3,
		DurationMS:   42,
		Timestamp:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	data, err := e.Encode()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "b1", got["build_id"])
	assert.Equal(t, "success", got["status"])
	assert.InDelta(t, 3, got["files_written"], 0)
	assert.Equal(t, "2024-01-02T03:04:05Z", got["timestamp"])
	assert.NotContains(t, got, "error")
	assert.NotContains(t, got, "revision")
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	require.NoError(t, p.PublishBuild(t.Context(), BuildEvent{}))
	require.NoError(t, p.Close())
}

func TestNewNATSPublisherRequiresSubject(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", "")
	require.Error(t, err)
}

func TestNewNATSPublisherUnreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", "pelican.builds")
	require.Error(t, err)
}
