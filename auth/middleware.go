package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"chat-sync/domain"
	"chat-sync/errors"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RolesKey  contextKey = "roles"
)

// Middleware authenticates requests with a bearer token. Websocket handshakes
// cannot carry headers from browsers, so the access_token query parameter is
// accepted as well. The user id is stored in the request context.
func Middleware(issuer TokenIssuer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			unauthorized(w, errors.ErrMissingToken)
			return
		}
		claims, err := issuer.ValidateToken(token)
		if err != nil {
			unauthorized(w, errors.ErrInvalidToken)
			return
		}
		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, RolesKey, claims.Roles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user, if any.
func UserIDFromContext(ctx context.Context) (domain.UserID, bool) {
	id, ok := ctx.Value(UserIDKey).(domain.UserID)
	return id, ok && id > 0
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return r.URL.Query().Get("access_token")
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
