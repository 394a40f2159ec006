package wire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"travel-agency/internal/adaptor"
	"travel-agency/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func testConfig() *utils.Config {
	return &utils.Config{
		App:      utils.AppConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Throttle: utils.ThrottleConfig{TTL: time.Minute, Limit: 1000},
		JWT:      utils.JWTConfig{Secret: "wire-secret", Expiration: time.Hour, RefreshExpiration: time.Hour},
	}
}

// handlers never reached in these tests only need to exist
func testRouter(t *testing.T, checks map[string]Pinger) (http.Handler, *utils.JWTManager) {
	t.Helper()
	config := testConfig()
	jwtManager := utils.NewJWTManager(config.JWT)
	opts := adaptor.Options{UploadMaxBytes: 1 << 20}
	log := zap.NewNop()

	handler := &adaptor.Handler{
		Auth:         adaptor.NewAuthHandler(nil, opts, log),
		User:         adaptor.NewUserHandler(nil, opts, log),
		Destination:  adaptor.NewDestinationHandler(nil, opts, log),
		Booking:      adaptor.NewBookingHandler(nil, opts, log),
		Slider:       adaptor.NewSliderHandler(nil, opts, log),
		Testimonial:  adaptor.NewTestimonialHandler(nil, nil, opts, log),
		Subscription: adaptor.NewSubscriptionHandler(nil, opts, log),
		Upload:       adaptor.NewUploadHandler(nil, opts, log),
	}
	return setupRouter(handler, jwtManager, checks, config, log), jwtManager
}

func bearer(t *testing.T, m *utils.JWTManager, role string) string {
	t.Helper()
	pair, err := m.Generate(7, "staff@example.com", role)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	router, jwtManager := testRouter(t, nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/destinations"},
		{http.MethodPatch, "/api/destinations/5"},
		{http.MethodDelete, "/api/destinations/5"},
		{http.MethodGet, "/api/bookings"},
		{http.MethodPut, "/api/bookings/3/status"},
		{http.MethodPost, "/api/sliders"},
		{http.MethodPut, "/api/sliders/1/reorder"},
		{http.MethodPost, "/api/testimonials/upload"},
		{http.MethodGet, "/api/subscriptions"},
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/upload/misc"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			req := httptest.NewRequest(rt.method, rt.path, nil)
			req.Header.Set("Authorization", bearer(t, jwtManager, "user"))
			rec = httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	router, _ := testRouter(t, nil)

	for _, path := range []string{"/api/auth/me", "/api/bookings/user/me"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestAdminReachesHandler(t *testing.T) {
	router, jwtManager := testRouter(t, nil)

	// a JSON body is rejected by the upload handler itself, past the guards
	req := httptest.NewRequest(http.MethodPost, "/api/upload/misc", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, jwtManager, "admin"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "multipart")
}

func TestHealth(t *testing.T) {
	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("all up", func(t *testing.T) {
		router, _ := testRouter(t, map[string]Pinger{"database": up, "cache": up})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":true,"message":"OK","data":{"database":"up","cache":"up"}}`, rec.Body.String())
	})

	t.Run("cache down", func(t *testing.T) {
		router, _ := testRouter(t, map[string]Pinger{"database": up, "cache": down})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"cache":"down"`)
	})
}
