// Package metrics records build, phase and generator timings.
//
// Components receive a Recorder and default to NoopRecorder, so metrics can
// be switched on without nil checks at call sites:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	orch, err := orchestrator.New(s, orchestrator.Options{Recorder: recorder})
//
// HTTPHandler serves a registry in the Prometheus exposition format.
package metrics
