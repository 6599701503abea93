package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/scoring"
	"Dealbies-Backend/internal/service"
	"Dealbies-Backend/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, slug string, meta service.RequestMeta) (service.Resolution, error) {
	args := m.Called(ctx, slug, meta)
	return args.Get(0).(service.Resolution), args.Error(1)
}

type mockOffers struct {
	mock.Mock
}

func (m *mockOffers) ListDeals(ctx context.Context, category string, mode scoring.SortMode, viewerID string) ([]scoring.DealView, error) {
	args := m.Called(ctx, category, mode, viewerID)
	views, _ := args.Get(0).([]scoring.DealView)
	return views, args.Error(1)
}

func (m *mockOffers) ListCoupons(ctx context.Context, category string, mode scoring.SortMode, viewerID string) ([]scoring.CouponView, error) {
	args := m.Called(ctx, category, mode, viewerID)
	views, _ := args.Get(0).([]scoring.CouponView)
	return views, args.Error(1)
}

func (m *mockOffers) CreateDeal(ctx context.Context, author *domain.User, in service.DealInput) (*scoring.DealView, error) {
	args := m.Called(ctx, author, in)
	view, _ := args.Get(0).(*scoring.DealView)
	return view, args.Error(1)
}

func (m *mockOffers) CreateCoupon(ctx context.Context, author *domain.User, in service.CouponInput) (*scoring.CouponView, error) {
	args := m.Called(ctx, author, in)
	view, _ := args.Get(0).(*scoring.CouponView)
	return view, args.Error(1)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type fixedStats map[string]interface{}

func (s fixedStats) GetStats() map[string]interface{} { return s }

func TestHandleRedirect_ResolveErrorGoesHome(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, "abc", mock.MatchedBy(func(meta service.RequestMeta) bool {
		return meta.IPAddress == "192.0.2.1" && meta.UserAgent == "curl/8.0"
	})).Return(service.Resolution{}, errors.New("db down"))

	h := NewRedirectHandler(resolver, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/visit/abc", nil)
	req.SetPathValue("slug", "abc")
	req.Header.Set("User-Agent", "curl/8.0")
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()

	h.HandleRedirect(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	resolver.AssertExpectations(t)
}

func TestHandleRedirect_UntrackedStillRedirects(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, "abc", mock.Anything).
		Return(service.Resolution{Location: "https://www.amazon.in/x?tag=dealbies-21", Kind: domain.KindDeal}, nil)

	h := NewRedirectHandler(resolver, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/visit/abc", nil)
	req.SetPathValue("slug", "abc")
	rec := httptest.NewRecorder()

	h.HandleRedirect(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://www.amazon.in/x?tag=dealbies-21", rec.Header().Get("Location"))
}

func TestExtractIPAddress(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded list", map[string]string{"X-Forwarded-For": " 203.0.113.5 , 10.0.0.1"}, "10.0.0.2:80", "203.0.113.5"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.2:80", "198.51.100.7"},
		{"client ip", map[string]string{"X-Client-IP": "198.51.100.8"}, "10.0.0.2:80", "198.51.100.8"},
		{"remote addr", nil, "192.0.2.10:4567", "192.0.2.10"},
		{"remote without port", nil, "192.0.2.11", "192.0.2.11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, extractIPAddress(req))
		})
	}
}

func TestOffersHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"internal", errors.New("boom"), http.StatusInternalServerError},
		{"invalid", service.ErrInvalidRequest, http.StatusBadRequest},
		{"not found", service.ErrOfferNotFound, http.StatusNotFound},
		{"slug exhausted", service.ErrSlugGeneration, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offers := new(mockOffers)
			offers.On("ListDeals", mock.Anything, "", scoring.SortComments, "").Return(nil, tt.err)
			h := NewOffersHandler(offers, validator.New(), zap.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/api/deals?sort=comments", nil)
			rec := httptest.NewRecorder()
			h.ListDeals(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
			offers.AssertExpectations(t)
		})
	}
}

func TestOffersHandler_CreateRequiresClaims(t *testing.T) {
	offers := new(mockOffers)
	h := NewOffersHandler(offers, validator.New(), zap.NewNop())

	rec := httptest.NewRecorder()
	h.CreateCoupon(rec, httptest.NewRequest(http.MethodPost, "/api/coupons", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	offers.AssertNotCalled(t, "CreateCoupon", mock.Anything, mock.Anything, mock.Anything)
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), nil, zap.NewNop())
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"database_status":"healthy"`)
	})

	t.Run("database down", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error { return errors.New("refused") }), nil, zap.NewNop())
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
	})

	t.Run("metrics include processor stats", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), fixedStats{"dropped": 2}, zap.NewNop())
		rec := httptest.NewRecorder()
		h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"click_processor":{"dropped":2}`)
	})

	t.Run("metrics without processor", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), nil, zap.NewNop())
		rec := httptest.NewRecorder()
		h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.NotContains(t, rec.Body.String(), "click_processor")
	})
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(1, 2, false)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "limits are per address")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("a"))

	now = now.Add(limiterIdleTTL + time.Minute)
	l.Allow("c")
	l.mu.Lock()
	_, kept := l.clients["a"]
	l.mu.Unlock()
	assert.False(t, kept, "idle clients are evicted")
}

func TestIPRateLimiter_Disabled(t *testing.T) {
	l := NewIPRateLimiter(0, 0, false)
	for i := 0; i < 100; i++ {
		require.True(t, l.Allow("a"))
	}
}

func TestIPRateLimiter_ClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/clicks", nil)
	req.RemoteAddr = "198.51.100.20:4000"
	req.Header.Set("X-Forwarded-For", "203.0.113.1")

	assert.Equal(t, "198.51.100.20", NewIPRateLimiter(1, 1, false).clientKey(req))
	assert.Equal(t, "203.0.113.1", NewIPRateLimiter(1, 1, true).clientKey(req))
}
