// Package middleware provides HTTP middleware for authentication and
// authorization.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// principalKey is the context key for storing the authenticated principal.
const principalKey ContextKey = "principal"

// Principal is the authenticated identity derived from a verified credential
// for one request. It is never persisted; it is reconstructed from the token
// on every request.
type Principal struct {
	UserID uuid.UUID
	Demo   bool // true for the shared read-only demo account
}

// TokenValidator is an interface for validating bearer tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (UserIDGetter, error)
}

// UserIDGetter is an interface for extracting the user ID from token claims.
type UserIDGetter interface {
	GetUserID() uuid.UUID
}

// Auth creates middleware that validates bearer tokens and attaches the
// derived Principal to the request context. demoUserID is the configured
// sentinel identifying the shared demo account; uuid.Nil disables the demo
// flag entirely. All rejections use the same generic message so a caller
// cannot tell which check failed.
func Auth(jwtService TokenValidator, demoUserID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				unauthorized(w)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w)
				return
			}

			userID := claims.GetUserID()
			principal := Principal{
				UserID: userID,
				Demo:   demoUserID != uuid.Nil && userID == demoUserID,
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal extracts the authenticated principal from the request context.
func GetPrincipal(r *http.Request) (Principal, error) {
	principal, ok := r.Context().Value(principalKey).(Principal)
	if !ok {
		return Principal{}, fmt.Errorf("principal not found in request context")
	}
	return principal, nil
}

// WithPrincipal returns a context carrying the given principal (for testing
// handlers without running the middleware).
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "authentication invalid")
}

// writeError writes the uniform error envelope used across the API.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
