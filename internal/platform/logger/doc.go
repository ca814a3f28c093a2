// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, optional rotated file output, and helpers for carrying a
// request-scoped logger through a context.Context.
package logger
