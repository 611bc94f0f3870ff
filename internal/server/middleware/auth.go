// Package middleware provides HTTP middleware for dashboard authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const principalKey ContextKey = "principal"

// Principal identifies the authenticated dashboard operator.
type Principal interface {
	GetSubject() string
	GetRole() string
}

// TokenValidator validates bearer tokens. Implemented by server.JWTService
// through an adapter so this package does not import server.
type TokenValidator interface {
	ValidateToken(tokenString string) (Principal, error)
}

// BearerToken returns the token from an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// principal in the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			principal, err := validator.ValidateToken(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="dashboard"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"detail":"Unauthorized"}` + "\n"))
}

// GetPrincipal extracts the authenticated principal from the request context.
func GetPrincipal(r *http.Request) (Principal, error) {
	p, ok := r.Context().Value(principalKey).(Principal)
	if !ok {
		return nil, fmt.Errorf("principal not found in request context")
	}
	return p, nil
}
