package middleware

import (
	"net/http"

	"evcms/internal/reqctx"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID stamps every request with an id, reusing the caller's header
// when one is supplied.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, rid)

		ctx := reqctx.WithRequestID(r.Context(), rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
