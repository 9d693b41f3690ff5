package middleware

import (
	"net/http"
	"strings"

	"evcms/internal/logger"
	"evcms/internal/reqctx"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// JWTAuth validates a Bearer token signed with the configured secret and
// stores the subject and role claims in the request context. Issuing tokens
// is outside this service; any HS256 token from the surrounding platform
// with a role claim is accepted.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("jwt: missing access token")
				http.Error(w, "missing access token", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))

			if err != nil || !token.Valid {
				logger.WithCtx(r.Context()).Warn("jwt: invalid or expired token", zap.Error(err))
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			role, ok := claims["role"].(string)
			if !ok {
				logger.WithCtx(r.Context()).Warn("jwt: invalid payload", zap.Any("claims", claims))
				http.Error(w, "invalid token payload", http.StatusUnauthorized)
				return
			}

			ctx := reqctx.WithRole(r.Context(), role)
			if sub, ok := claims["sub"].(string); ok {
				ctx = reqctx.WithSubject(ctx, sub)
			} else if username, ok := claims["username"].(string); ok {
				ctx = reqctx.WithSubject(ctx, username)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OnlyRole rejects requests whose context role does not match.
func OnlyRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole, ok := reqctx.GetRole(r.Context())
			if !ok || userRole != role {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
