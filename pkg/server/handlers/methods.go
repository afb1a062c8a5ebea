package handlers

import (
	"net/http"
	"strings"
)

// NewMethodNotAllowedHandler answers every request with a 405 in the API's
// JSON error envelope. allow lists the methods the path does accept and is
// sent back in the Allow header.
func NewMethodNotAllowedHandler(allow ...string) http.Handler {
	allowed := strings.Join(allow, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allowed)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed", "")
	})
}
