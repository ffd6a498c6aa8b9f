package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

type contextKey string

const sessionIDKey contextKey = "sessionID"

// SessionTokenHeader carries the study session token when no bearer token is sent
const SessionTokenHeader = "X-Session-Token"

// SessionMiddleware validates the study session token and stores the session ID in the context
func SessionMiddleware(tokenGenerator *TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				token = r.Header.Get(SessionTokenHeader)
			}

			if token == "" {
				writeError(w, http.StatusUnauthorized, `{"error":"session token required"}`)
				return
			}

			sessionID, err := tokenGenerator.ValidateSessionToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, `{"error":"invalid or expired session token"}`)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
		})
	}
}

// APIKeyMiddleware validates API key from X-API-Key header
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providedKey := r.Header.Get("X-API-Key")

			if apiKey == "" || providedKey == "" || subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				writeError(w, http.StatusUnauthorized, `{"error":"invalid or missing API key"}`)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithSessionID returns a context carrying the study session ID
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionID retrieves the study session ID from context
func GetSessionID(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionIDKey).(string)
	return sessionID, ok && sessionID != ""
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header
func bearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
