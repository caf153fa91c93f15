package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/tickget/go-seatmap-engine/internal/pkg/metrics"
)

func TestSetup(t *testing.T) {
	e := echo.New()
	Setup(e)

	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "test")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestLogger(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger())

	e.GET("/test", func(c echo.Context) error {
		c.Set("user_id", "user-1")
		return c.String(http.StatusOK, "success")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogger_WithError(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger())

	e.GET("/error", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request")
	})

	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPrometheus(t *testing.T) {
	e := echo.New()

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	e.Use(Prometheus(m))

	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	families, err := reg.Gather()
	assert.NoError(t, err)

	var foundRequests, foundDuration bool
	for _, f := range families {
		if f.GetName() == "http_requests_total" {
			foundRequests = true
		}
		if f.GetName() == "http_request_duration_seconds" {
			foundDuration = true
		}
	}
	assert.True(t, foundRequests, "http_requests_total should be recorded")
	assert.True(t, foundDuration, "http_request_duration_seconds should be recorded")
}

func TestMetricsTokenAuth(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		authHeader string
		wantStatus int
	}{
		{"トークン未設定なら素通し", "", "", http.StatusOK},
		{"正しいトークン", "secret-token", "Bearer secret-token", http.StatusOK},
		{"間違ったトークン", "secret-token", "Bearer wrong", http.StatusUnauthorized},
		{"ヘッダーなし", "secret-token", "", http.StatusUnauthorized},
		{"Bearer以外", "secret-token", "Basic abc", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/metrics", func(c echo.Context) error {
				return c.String(http.StatusOK, "metrics")
			}, MetricsTokenAuth(tt.token))

			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tt.authHeader != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.authHeader)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
