// Package logger provides structured logging for the application.
//
// Loggers are plain *slog.Logger values. The JSON handler from log/slog is
// used for production output, and a charmbracelet/log handler renders a
// human-friendly text format for local development. A logger enriched with
// request-scoped attributes travels through the call stack in the context.
package logger
