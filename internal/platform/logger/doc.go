// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, carries loggers through context.Context, and adds
// CI run metadata to every record when the process runs inside a CI job.
package logger
