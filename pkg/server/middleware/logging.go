package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// Logging writes one access log record per request. Records for 4xx
// responses are logged at WARN and 5xx at ERROR.
//
// The request ID is not added here: the logger picks it up from the request
// context, so Logging must run inside RequestID.
//
// Example record (JSON):
//
//	{
//	  "time": "2026-03-14T09:26:53Z",
//	  "level": "INFO",
//	  "msg": "request completed",
//	  "method": "POST",
//	  "path": "/api/calculate",
//	  "status": 200,
//	  "latency_ms": 2,
//	  "request_id": "5f0c6c7e-...",
//	  "remote_addr": "10.0.0.7:51234",
//	  "user_agent": "curl/8.5.0"
//	}
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)
			ctx := r.Context()

			logger.DebugContext(ctx, "request started",
				"method", r.Method,
				"path", r.URL.Path,
			)

			next.ServeHTTP(rw, r)

			level := slog.LevelInfo
			switch {
			case rw.statusCode >= 500:
				level = slog.LevelError
			case rw.statusCode >= 400:
				level = slog.LevelWarn
			}

			logger.Log(ctx, level, "request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"latency_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		})
	}
}
