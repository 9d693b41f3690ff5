package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"evcms/internal/reqctx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protected(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		role, _ := reqctx.GetRole(r.Context())
		w.Header().Set("X-Role", role)
		w.WriteHeader(http.StatusOK)
	})
	return JWTAuth(testSecret)(OnlyRole("admin")(inner)), &called
}

func TestJWTAuthMissingToken(t *testing.T) {
	h, called := protected(t)

	req := httptest.NewRequest(http.MethodPost, "/api/blogs", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestJWTAuthBadSignature(t *testing.T) {
	h, called := protected(t)

	token := signToken(t, "wrong-secret", jwt.MapClaims{"role": "admin"})
	req := httptest.NewRequest(http.MethodPost, "/api/blogs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	h, called := protected(t)

	token := signToken(t, testSecret, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/blogs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestJWTAuthMissingRoleClaim(t *testing.T) {
	h, called := protected(t)

	token := signToken(t, testSecret, jwt.MapClaims{"sub": "admin@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/blogs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestJWTAuthWrongRole(t *testing.T) {
	h, called := protected(t)

	token := signToken(t, testSecret, jwt.MapClaims{"role": "viewer"})
	req := httptest.NewRequest(http.MethodPost, "/api/blogs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}

func TestJWTAuthAdminPasses(t *testing.T) {
	h, called := protected(t)

	token := signToken(t, testSecret, jwt.MapClaims{
		"role": "admin",
		"sub":  "admin@example.com",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/blogs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
	assert.Equal(t, "admin", rec.Header().Get("X-Role"))
}
