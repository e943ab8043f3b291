package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/pkg/ctxutil"
)

// RequestIDHeader carries the request id on both requests and responses.
const RequestIDHeader = "X-Request-Id"

// RequestID returns middleware that reuses an incoming request id or
// generates a fresh one, storing it in the context and echoing it on
// the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
