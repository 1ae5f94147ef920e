// Package logger provides structured logging functionality for the application.
//
// It configures Go's standard library log/slog with a JSON handler at the
// configured level, and carries request-scoped loggers (tagged with the
// request's trace ID) through context.Context.
package logger
