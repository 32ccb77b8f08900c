// Package logging builds the slog loggers used across httpstub.
//
// The engine logs stub resolutions at debug and unmatched requests at warn;
// by default output goes to stderr as text at warn level, so a passing test
// run produces no log noise. Set HTTPSTUB_LOG=debug to watch every
// resolution during a test run.
package logging
