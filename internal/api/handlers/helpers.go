package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// writeJSON renders v as the response body. Encoding failures after the
// status line is written can only be logged, not reported to the client.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

// writeError renders a `{"error": msg}` body with the given status. msg is
// client-facing; internal detail belongs in the log line at the call site.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}
