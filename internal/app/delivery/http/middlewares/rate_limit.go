package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit limits each client IP to APP_MAX_REQUESTS requests per second. A
// non-positive limit disables it.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	if m.InternalConfig.App.MaxRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(m.InternalConfig.App.MaxRequests, time.Second)
}
