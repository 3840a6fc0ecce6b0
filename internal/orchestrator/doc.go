// Package orchestrator runs builds: it resolves paths and migrates settings
// once at construction, then each Run executes the context phase, the
// output directory cleanup and the output phase of a fresh generator
// pipeline.
package orchestrator
