package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/security"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signTestToken(t *testing.T, accountID int64, role domain.AccountType) string {
	t.Helper()
	claims := security.AccountClaims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	middleware := NewAuthMiddleware(security.NewTokenManager(testSecret))

	var seen domain.Actor
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = actorFrom(r.Context())
		called = true
	})
	handler := middleware.Handler(next)

	t.Run("ValidToken", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/v1/wallet", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, 42, domain.AccountTypeBuyer))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.True(t, called)
		assert.Equal(t, int64(42), seen.AccountID)
		assert.Equal(t, domain.AccountTypeBuyer, seen.Role)
		assert.False(t, seen.System)
	})

	t.Run("MissingToken", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/v1/wallet", nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("BadToken", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/v1/wallet", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RawTokenWithoutBearerPrefix", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/v1/wallet", nil)
		req.Header.Set("Authorization", signTestToken(t, 7, domain.AccountTypeFarmer))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.True(t, called)
		assert.Equal(t, int64(7), seen.AccountID)
	})
}
