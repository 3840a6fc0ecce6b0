// Package errors provides the classified error primitives used across pelican.
//
// Every failure that can reach the command line is a ClassifiedError carrying a
// category (configuration, generation, filesystem, ...), a severity and a small
// structured context. The CLIErrorAdapter is the single place where such errors
// are turned into log output and a process exit code.
//
// Example usage:
//
//	err := errors.ConfigError("theme not found").
//		WithContext("theme", name).
//		Build()
package errors
