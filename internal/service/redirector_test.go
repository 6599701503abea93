package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"Dealbies-Backend/internal/affiliate"
	"Dealbies-Backend/internal/config"
	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/repository"
	"Dealbies-Backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, click *domain.ClickTracking) error {
	return m.Called(ctx, click).Error(0)
}

// brokenStorage fails every slug lookup
type brokenStorage struct {
	*memory.MemStorage
}

func (brokenStorage) GetDealBySlug(context.Context, string) (*domain.Deal, error) {
	return nil, errors.New("connection refused")
}

func testRules() affiliate.Rules {
	return affiliate.DefaultRules(config.Affiliate{AmazonTag: "dealbies-21", AffiliateID: "dealbies"})
}

func newRedirectFixture(t *testing.T) (*Redirector, *memory.MemStorage) {
	t.Helper()
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.CreateDeal(ctx, &domain.Deal{Slug: "abc", Title: "Phone", URL: "https://www.amazon.in/x?y=1", Merchant: "amazon", UserID: "u1"}))
	require.NoError(t, store.CreateDeal(ctx, &domain.Deal{Slug: "old", Title: "Old", URL: "https://www.amazon.in/old", Expired: true, UserID: "u1"}))
	require.NoError(t, store.CreateCoupon(ctx, &domain.Coupon{Slug: "xyz", Title: "Gone", URL: "https://www.myntra.com/c", Expired: true, UserID: "u1"}))
	require.NoError(t, store.CreateCoupon(ctx, &domain.Coupon{Slug: "style", Title: "Style", URL: "https://www.myntra.com/sale", UserID: "u1"}))
	require.NoError(t, store.CreateDeal(ctx, &domain.Deal{Slug: "plain", Title: "Plain", URL: "https://shop.example.com/p?id=7", UserID: "u1"}))

	tracker := NewClickTracker(store, nil, zap.NewNop())
	return NewRedirector(store, testRules(), tracker, zap.NewNop()), store
}

func allClicks(t *testing.T, store *memory.MemStorage) []*domain.ClickTracking {
	t.Helper()
	clicks, _, err := store.ListClicks(context.Background(), repository.ClickFilter{})
	require.NoError(t, err)
	return clicks
}

func TestRedirector_DealAddsAffiliateTagAndTracksClick(t *testing.T) {
	r, store := newRedirectFixture(t)

	res, err := r.Resolve(context.Background(), "abc", RequestMeta{
		UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148",
		IPAddress: "203.0.113.9",
		Referer:   "https://dealbies.com/",
	})
	require.NoError(t, err)

	u, err := url.Parse(res.Location)
	require.NoError(t, err)
	assert.Equal(t, "www.amazon.in", u.Host)
	assert.Equal(t, "dealbies-21", u.Query().Get("tag"))
	assert.Equal(t, "1", u.Query().Get("y"))
	assert.Equal(t, domain.KindDeal, res.Kind)
	assert.True(t, res.Tracked)

	clicks := allClicks(t, store)
	require.Len(t, clicks, 1)
	c := clicks[0]
	assert.Equal(t, "abc", c.Slug)
	assert.Equal(t, domain.KindDeal, c.Type)
	assert.Equal(t, "https://www.amazon.in/x?y=1", c.OriginalURL)
	assert.Equal(t, res.Location, c.FinalURL)
	assert.Equal(t, "amazon", c.Merchant)
	require.NotNil(t, c.IPAddress)
	assert.Equal(t, "203.0.113.9", *c.IPAddress)
	assert.Equal(t, "mobile", c.GetDeviceType())
}

func TestRedirector_ExpiredCouponGoesToDetailPage(t *testing.T) {
	r, store := newRedirectFixture(t)

	res, err := r.Resolve(context.Background(), "xyz", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "/coupon/xyz", res.Location)
	assert.False(t, res.Tracked)
	assert.Empty(t, allClicks(t, store))
}

func TestRedirector_ExpiredDealGoesToDetailPage(t *testing.T) {
	r, store := newRedirectFixture(t)

	res, err := r.Resolve(context.Background(), "old", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "/deal/old", res.Location)
	assert.Empty(t, allClicks(t, store))
}

func TestRedirector_UnknownSlug(t *testing.T) {
	r, store := newRedirectFixture(t)

	res, err := r.Resolve(context.Background(), "none", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, NotFoundPath, res.Location)
	assert.Empty(t, res.Kind)
	assert.Empty(t, allClicks(t, store))
}

func TestRedirector_CouponAndUnknownMerchant(t *testing.T) {
	r, store := newRedirectFixture(t)
	ctx := context.Background()

	res, err := r.Resolve(ctx, "style", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "https://www.myntra.com/sale?affiliate_id=dealbies", res.Location)
	assert.Equal(t, domain.KindCoupon, res.Kind)

	res, err = r.Resolve(ctx, "plain", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/p?id=7", res.Location)

	clicks := allClicks(t, store)
	require.Len(t, clicks, 2)
	// merchant falls back to the host name
	assert.Equal(t, "shop", clicks[0].Merchant)
	assert.Equal(t, domain.KindCoupon, clicks[1].Type)
	assert.Nil(t, clicks[0].UserAgent)
}

func TestRedirector_ClickFailureStillRedirects(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.CreateDeal(context.Background(), &domain.Deal{Slug: "abc", URL: "https://www.amazon.in/x?y=1", Merchant: "amazon"}))

	rec := &mockRecorder{}
	rec.On("Record", mock.Anything, mock.MatchedBy(func(c *domain.ClickTracking) bool {
		return c.Slug == "abc" && c.Type == domain.KindDeal
	})).Return(errors.New("disk full")).Once()

	r := NewRedirector(store, testRules(), rec, zap.NewNop())
	res, err := r.Resolve(context.Background(), "abc", RequestMeta{})
	require.NoError(t, err)
	assert.Contains(t, res.Location, "tag=dealbies-21")
	assert.False(t, res.Tracked)
	rec.AssertExpectations(t)
}

func TestRedirector_LongMetadataFitsColumns(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.CreateDeal(context.Background(), &domain.Deal{Slug: "abc", URL: "https://www.amazon.in/x", Merchant: "amazon"}))

	referer := "https://forum.example.com/thread?q=" + strings.Repeat("a", 2048)
	ip := strings.Repeat("f", 60)

	var saved *domain.ClickTracking
	rec := &mockRecorder{}
	rec.On("Record", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.ClickTracking)
	}).Return(nil).Once()

	r := NewRedirector(store, testRules(), rec, zap.NewNop())
	res, err := r.Resolve(context.Background(), "abc", RequestMeta{Referer: referer, IPAddress: ip})
	require.NoError(t, err)
	assert.True(t, res.Tracked)

	require.NotNil(t, saved)
	require.NotNil(t, saved.Referer)
	assert.Len(t, *saved.Referer, domain.MaxRefererLen)
	assert.Equal(t, referer[:domain.MaxRefererLen], *saved.Referer)
	require.NotNil(t, saved.IPAddress)
	assert.Len(t, *saved.IPAddress, domain.MaxIPAddressLen)
	rec.AssertExpectations(t)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"", 5, ""},
		{"short", 10, "short"},
		{"exact", 5, "exact"},
		{"abcdef", 3, "abc"},
		{"привет", 3, "при"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.limit))
		})
	}

	assert.Nil(t, clipped("", 10))
}

func TestRedirector_StorageFailure(t *testing.T) {
	rec := &mockRecorder{}
	r := NewRedirector(brokenStorage{memory.New()}, testRules(), rec, zap.NewNop())

	_, err := r.Resolve(context.Background(), "abc", RequestMeta{})
	assert.Error(t, err)
	rec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}
