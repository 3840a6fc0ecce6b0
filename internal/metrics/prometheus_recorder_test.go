package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.ObservePhaseDuration("context", 150*time.Millisecond)
	pr.ObserveGeneratorDuration("articles", "context", 100*time.Millisecond)
	pr.IncGeneratorResult("articles", ResultSuccess)
	pr.SetFilesWritten(12)
	pr.IncRebuildTrigger("content")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"pelican_build_duration_seconds",
		"pelican_build_outcomes_total",
		"pelican_phase_duration_seconds",
		"pelican_generator_duration_seconds",
		"pelican_generator_results_total",
		"pelican_files_written",
		"pelican_rebuild_triggers_total",
	} {
		assert.True(t, names[want], "missing metric %s", want)
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveBuildDuration(time.Second)
	pr.IncBuildOutcome(BuildOutcomeFailed)
	pr.IncRebuildTrigger("theme")
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncBuildOutcome(BuildOutcomeSuccess)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `pelican_build_outcomes_total{outcome="success"} 1`))
}
