// Package auth signs study session handles and guards the admin API.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenType = "session"

// TokenGenerator handles JWT session token generation and validation
type TokenGenerator struct {
	secret        string
	sessionExpiry time.Duration
	now           func() time.Time
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, sessionExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:        secret,
		sessionExpiry: sessionExpiry,
		now:           time.Now,
	}
}

// GenerateSessionToken creates a token carrying the ID of a study session
func (tg *TokenGenerator) GenerateSessionToken(sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("session id is required")
	}

	now := tg.now()
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"exp":        now.Add(tg.sessionExpiry).Unix(),
		"iat":        now.Unix(),
		"type":       sessionTokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ValidateSessionToken validates a session token and returns the session ID
func (tg *TokenGenerator) ValidateSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	}, jwt.WithTimeFunc(tg.now))
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != sessionTokenType {
		return "", fmt.Errorf("token is not a session token")
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("session_id not found in token")
	}

	return sessionID, nil
}
