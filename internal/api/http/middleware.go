package http

import (
	"context"
	"net/http"
	"strings"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/security"
)

type contextKey string

const actorContextKey contextKey = "actor"

// AuthMiddleware validates the identity provider's bearer token and injects
// the acting principal into the request context.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tokenManager security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tokenManager}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearer(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization token is not provided"})
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		actor := domain.Actor{AccountID: claims.AccountID, Role: claims.Role}
		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
	})
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	if len(authHeader) > 7 && strings.EqualFold(authHeader[0:7], "BEARER ") {
		return authHeader[7:]
	}
	return authHeader
}

func withActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// actorFrom returns the authenticated principal stored by the middleware.
func actorFrom(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(domain.Actor)
	return actor, ok
}
