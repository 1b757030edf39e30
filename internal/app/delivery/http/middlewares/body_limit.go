package middlewares

import (
	"net/http"
)

// BodyLimit caps the request body at APP_REQUEST_BODY_LIMIT_IN_MEGABYTE.
// Reading past the cap fails with *http.MaxBytesError.
func (m *Middlewares) BodyLimit(next http.Handler) http.Handler {
	limit := int64(m.InternalConfig.App.RequestBodyLimitInMegabyte) << 20
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limit > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}
