package middleware

import (
	"net/http"
	"time"
)

// HTTPRecorder receives per-request measurements. The metrics collector
// implements it.
type HTTPRecorder interface {
	RequestStarted()
	RequestFinished()
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// Metrics records request counts, latency and in-flight requests. route maps
// a request to its registered pattern so that metric labels stay bounded;
// unmatched requests are labelled "unmatched".
func Metrics(recorder HTTPRecorder, route func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if recorder == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder.RequestStarted()
			defer recorder.RequestFinished()

			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			pattern := ""
			if route != nil {
				pattern = route(r)
			}
			if pattern == "" {
				pattern = "unmatched"
			}
			recorder.RecordHTTPRequest(r.Method, pattern, rw.statusCode, time.Since(start))
		})
	}
}
