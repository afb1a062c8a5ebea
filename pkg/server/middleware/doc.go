// Package middleware provides the HTTP middleware of the shipping quote API.
//
// Each middleware has the signature func(http.Handler) http.Handler, or is a
// constructor returning one, so they compose by plain wrapping. The server
// applies them from outermost to innermost as:
//
//	Recovery → RequestID → Logging → Metrics → tracing → CORS → BodyLimit → mux
//
// Recovery is outermost so that panics anywhere in the chain produce a JSON
// 500 instead of a dropped connection. RequestID runs before Logging so that
// access log records carry the request_id field.
//
// # Request IDs
//
// RequestID reuses a client supplied X-Request-ID header and otherwise
// generates a UUID. Handlers read it with logging.GetRequestID.
//
// # Error envelope
//
// Errors produced here use the same body as the API handlers:
//
//	{"success": false, "error": "Internal server error"}
package middleware
