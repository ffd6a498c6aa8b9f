package middlewares

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// RequestSizeLimitMiddleware rejects request bodies larger than maxBytes
//
// Declared lengths are checked up front. Bodies of unknown length are cut off while the
// handler reads them, which surfaces as *http.MaxBytesError from the JSON or CSV decoder.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	message := fmt.Sprintf("request body exceeds %d bytes", maxBytes)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeError(w, http.StatusRequestEntityTooLarge, message)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes the same {"error": ...} body the handlers use
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
