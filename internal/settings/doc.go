// Package settings holds the build settings mapping: the baseline defaults,
// loading of a YAML settings file over them, typed accessors, and the one-time
// migration of deprecated keys into their modern equivalents.
package settings
