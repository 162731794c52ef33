// Package logger configures the application's structured logging.
//
// It builds on log/slog with a JSON handler, a configurable level, and
// context helpers that let request-scoped loggers flow through the store
// and service layers.
package logger
