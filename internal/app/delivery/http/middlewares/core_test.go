package middlewares

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/utils"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestMiddlewares(app config.App) *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{App: app})
}

func TestRequestIDMiddleware(t *testing.T) {
	middlewares := newTestMiddlewares(config.App{})

	var seen string
	handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestID(r.Context())
	}))

	t.Run("Client Request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-id", seen)
		assert.Equal(t, "client-id", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Generated Request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.True(t, strings.HasPrefix(seen, constvars.REQUEST_ID_PREFIX))
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestLogging_RecordsStatus(t *testing.T) {
	middlewares := newTestMiddlewares(config.App{})
	handler := middlewares.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestErrorHandler(t *testing.T) {
	middlewares := newTestMiddlewares(config.App{})

	tests := []struct {
		name  string
		panic interface{}
	}{
		{name: "String Panic", panic: "boom"},
		{name: "Error Panic", panic: errors.New("boom")},
		{name: "Other Panic", panic: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middlewares.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.panic)
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Contains(t, rr.Body.String(), constvars.ErrClientSomethingWrongWithApplication)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	middlewares := newTestMiddlewares(config.App{RequestBodyLimitInMegabyte: 1})

	var readErr error
	handler := middlewares.BodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	t.Run("Within Limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small"))
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.NoError(t, readErr)
	})

	t.Run("Over Limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", (1<<20)+1)))
		handler.ServeHTTP(httptest.NewRecorder(), req)

		var maxBytesErr *http.MaxBytesError
		assert.True(t, errors.As(readErr, &maxBytesErr))
	})
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Limited", func(t *testing.T) {
		handler := newTestMiddlewares(config.App{MaxRequests: 1}).RateLimit()(ok)

		codes := make([]int, 0, 2)
		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			codes = append(codes, rr.Code)
		}
		assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("Disabled", func(t *testing.T) {
		handler := newTestMiddlewares(config.App{}).RateLimit()(ok)
		for i := 0; i < 5; i++ {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, rr.Code)
		}
	})
}
