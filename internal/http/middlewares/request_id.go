package middlewares

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/http/httpguts"
)

const maxRequestIDLen = 128

// WithRequestID propaga X-Request-ID si el cliente manda uno válido; si no, genera un UUID.
func WithRequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
			if rid == "" || len(rid) > maxRequestIDLen || !httpguts.ValidHeaderFieldValue(rid) {
				rid = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", rid)
			next.ServeHTTP(w, r.WithContext(setRequestID(r.Context(), rid)))
		})
	}
}
