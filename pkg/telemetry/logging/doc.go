// Package logging provides structured logging for the quote service.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON or text output
//   - Context-aware records carrying request_id, calculation_id, trace_id and span_id
//   - Optional size-rotated log files via lumberjack
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	if err != nil {
//	    return err
//	}
//	defer logger.Shutdown()
//	slog.SetDefault(logger.Slog())
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	logger.InfoContext(ctx, "quote calculated", "total_price", 34.0)
//
// Context fields are added by the handler, so any *slog.Logger obtained from
// Slog() enriches records logged with a context the same way.
//
// # File Output
//
// When telemetry.logging.file.path is set, records are written both to the
// configured writer (stdout by default) and to the file, which is rotated at
// max_size_mb and pruned by max_backups and max_age_days.
package logging
