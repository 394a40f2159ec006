package adaptor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSubscriptionService struct {
	emails   map[string]bool
	isActive *bool
	page     *request.PaginatedRequest
}

var _ usecase.SubscriptionService = (*fakeSubscriptionService)(nil)

func (f *fakeSubscriptionService) Subscribe(_ context.Context, req *request.CreateSubscriptionRequest) (*response.SubscriptionResponse, error) {
	if f.emails[req.Email] {
		return nil, fmt.Errorf("%w: %s already subscribed", apperror.ErrConstraintViolation, req.Email)
	}
	f.emails[req.Email] = true
	return &response.SubscriptionResponse{ID: int64(len(f.emails)), Email: req.Email, IsActive: true}, nil
}

func (f *fakeSubscriptionService) GetAll(_ context.Context, req *request.PaginatedRequest, isActive *bool) (*response.PaginatedResponse[response.SubscriptionResponse], error) {
	f.page, f.isActive = req, isActive
	return &response.PaginatedResponse[response.SubscriptionResponse]{}, nil
}

func (f *fakeSubscriptionService) Unsubscribe(context.Context, int64) error { return nil }

func (f *fakeSubscriptionService) Toggle(_ context.Context, id int64) (*response.SubscriptionResponse, error) {
	return &response.SubscriptionResponse{ID: id, IsActive: false}, nil
}

func TestSubscriptionHandler(t *testing.T) {
	svc := &fakeSubscriptionService{emails: map[string]bool{}}
	h := NewSubscriptionHandler(svc, Options{}, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/api/subscriptions", h.Subscribe)
	r.Get("/api/subscriptions", h.GetAll)
	r.Delete("/api/subscriptions/{id}", h.Unsubscribe)
	r.Patch("/api/subscriptions/{id}/toggle", h.Toggle)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
		return rec
	}

	rec := do(http.MethodPost, "/api/subscriptions", `{"email":"news@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(http.MethodPost, "/api/subscriptions", `{"email":"news@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "duplicate active subscription")

	rec = do(http.MethodPost, "/api/subscriptions", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodGet, "/api/subscriptions?page=2&limit=5&isActive=false", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, svc.page.Page)
	assert.Equal(t, 5, svc.page.Limit)
	require.NotNil(t, svc.isActive)
	assert.False(t, *svc.isActive)

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/api/subscriptions/1", "").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodPatch, "/api/subscriptions/1/toggle", "").Code)
}
