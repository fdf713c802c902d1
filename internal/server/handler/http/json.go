// Package http provides HTTP handlers and routing for the proxy directory API.
package http

import (
	"encoding/json"
	"net/http"
)

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits a JSON error body with a generic message. Internal
// details never reach the caller through here.
func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}
