// Package observability provides logging, metrics, and tracing hooks for
// flag registries.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// LogRegistered logs a completed registration pass.
func LogRegistered(logger *slog.Logger, flags, aliases int) {
	if logger == nil {
		return
	}
	logger.Debug("flags registered",
		slog.Int("flags", flags),
		slog.Int("aliases", aliases),
	)
}

// LogDanglingAlias logs an alias whose target is not a registered flag.
func LogDanglingAlias(logger *slog.Logger, alias, target, scope string) {
	if logger == nil {
		return
	}
	logger.Warn("alias target is not a registered flag",
		slog.String("alias", alias),
		slog.String("target", target),
		slog.String("scope", scope),
	)
}

// LogFlagChanged logs a successful mutation.
func LogFlagChanged(logger *slog.Logger, name string, id uuid.UUID, enabled bool) {
	if logger == nil {
		return
	}
	logger.Info("flag changed",
		slog.String("flag", name),
		slog.String("flag_id", id.String()),
		slog.Bool("enabled", enabled),
	)
}

// LogLoaded logs a successful load.
func LogLoaded(logger *slog.Logger, backend string, applied, skipped int) {
	if logger == nil {
		return
	}
	logger.Info("flags loaded",
		slog.String("backend", backend),
		slog.Int("applied", applied),
		slog.Int("skipped", skipped),
	)
}

// LogNothingStored logs a load that found no persisted state.
func LogNothingStored(logger *slog.Logger, backend string) {
	if logger == nil {
		return
	}
	logger.Debug("no persisted flags",
		slog.String("backend", backend),
	)
}

// LogRecordSkipped logs a persisted record that was not applied.
func LogRecordSkipped(logger *slog.Logger, name, reason string) {
	if logger == nil {
		return
	}
	logger.Debug("persisted flag skipped",
		slog.String("flag", name),
		slog.String("reason", reason),
	)
}

// LogIDMismatch logs a persisted record whose identifier differs from the
// derived one. The record is still applied by name.
func LogIDMismatch(logger *slog.Logger, name string, stored, derived uuid.UUID) {
	if logger == nil {
		return
	}
	logger.Warn("persisted flag id does not match declaration",
		slog.String("flag", name),
		slog.String("stored_id", stored.String()),
		slog.String("derived_id", derived.String()),
	)
}

// LogPersistError logs a load or save failure (non-fatal).
func LogPersistError(logger *slog.Logger, op, backend string, err error) {
	if logger == nil {
		return
	}
	logger.Error("flag persistence failed",
		slog.String("operation", op),
		slog.String("backend", backend),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
