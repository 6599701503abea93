package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/repository"
	"Dealbies-Backend/internal/repository/memory"
	"Dealbies-Backend/internal/repository/postgres"
	"Dealbies-Backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// failingClicks fails the merchant grouping query
type failingClicks struct {
	*memory.MemStorage
}

func (failingClicks) CountClicksBy(context.Context, repository.ClickFilter, string) ([]repository.GroupCount, error) {
	return nil, errors.New("statement timeout")
}

func newAnalytics(store repository.Storage) *AnalyticsService {
	return NewAnalyticsService(store, NewClickTracker(store, nil, zap.NewNop()), zap.NewNop())
}

func TestAnalyticsService_RecordClick(t *testing.T) {
	store := memory.New()
	svc := newAnalytics(store)

	click, err := svc.RecordClick(context.Background(), ClickInput{
		Slug:        "abc",
		Type:        "coupon",
		OriginalURL: "https://www.nykaa.com/lipstick",
		FinalURL:    "https://www.nykaa.com/lipstick?affiliate_id=dealbies",
		UserAgent:   "Mozilla/5.0 (compatible; bingbot/2.0)",
	})
	require.NoError(t, err)

	assert.NotZero(t, click.ID)
	assert.Equal(t, domain.KindCoupon, click.Type)
	assert.Equal(t, "nykaa", click.Merchant)
	assert.Equal(t, "bot", click.GetDeviceType())
	assert.Nil(t, click.IPAddress)
	assert.Nil(t, click.Referer)
}

func TestAnalyticsService_RecordClickClipsMetadata(t *testing.T) {
	store := memory.New()
	svc := newAnalytics(store)

	click, err := svc.RecordClick(context.Background(), ClickInput{
		Slug:        "abc",
		Type:        "deal",
		OriginalURL: "https://www.amazon.in/x",
		FinalURL:    "https://www.amazon.in/x?tag=dealbies-21",
		IPAddress:   strings.Repeat("1", 80),
		Referer:     strings.Repeat("r", 900),
	})
	require.NoError(t, err)

	require.NotNil(t, click.IPAddress)
	assert.Len(t, *click.IPAddress, domain.MaxIPAddressLen)
	require.NotNil(t, click.Referer)
	assert.Len(t, *click.Referer, domain.MaxRefererLen)
}

func TestAnalyticsService_Summary(t *testing.T) {
	// sqlite keeps this close to the production query path
	store := postgres.New(testutil.NewDB(t), zap.NewNop())
	svc := newAnalytics(store)
	now := time.Date(2026, 7, 31, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	add := func(slug string, kind domain.OfferKind, merchant string, at time.Time) {
		require.NoError(t, store.SaveClick(ctx, &domain.ClickTracking{
			Slug: slug, Type: kind, OriginalURL: "https://x.test", FinalURL: "https://x.test", Merchant: merchant, CreatedAt: at,
		}))
	}
	add("a", domain.KindDeal, "amazon", now.Add(-time.Hour))
	add("a", domain.KindDeal, "amazon", now.Add(-2*time.Hour))
	add("b", domain.KindCoupon, "myntra", now.AddDate(0, 0, -1))
	add("c", domain.KindDeal, "flipkart", now.AddDate(0, 0, -29))
	add("old", domain.KindDeal, "amazon", now.AddDate(0, 0, -45))

	summary, err := svc.Summary(ctx, repository.ClickFilter{Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(5), summary.Total)
	assert.Len(t, summary.Clicks, 2)
	assert.Equal(t, 2, summary.Limit)
	assert.Equal(t, []repository.GroupCount{
		{Key: "amazon", Count: 3},
		{Key: "flipkart", Count: 1},
		{Key: "myntra", Count: 1},
	}, summary.ByMerchant)
	assert.Equal(t, []repository.GroupCount{
		{Key: "deal", Count: 4},
		{Key: "coupon", Count: 1},
	}, summary.ByType)

	require.Len(t, summary.Daily, 30)
	assert.Equal(t, "2026-07-02", summary.Daily[0].Date)
	assert.Equal(t, int64(1), summary.Daily[0].Count)
	assert.Equal(t, "2026-07-30", summary.Daily[28].Date)
	assert.Equal(t, int64(1), summary.Daily[28].Count)
	assert.Equal(t, "2026-07-31", summary.Daily[29].Date)
	assert.Equal(t, int64(2), summary.Daily[29].Count)

	var total int64
	for _, d := range summary.Daily {
		total += d.Count
	}
	assert.Equal(t, int64(4), total)
}

func TestAnalyticsService_SummaryFilteredByMerchant(t *testing.T) {
	store := memory.New()
	svc := newAnalytics(store)
	ctx := context.Background()

	for _, m := range []string{"amazon", "amazon", "ajio"} {
		require.NoError(t, store.SaveClick(ctx, &domain.ClickTracking{Slug: "s", Type: domain.KindDeal, Merchant: m}))
	}

	summary, err := svc.Summary(ctx, repository.ClickFilter{Merchant: "amazon", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Total)
	assert.Equal(t, []repository.GroupCount{{Key: "amazon", Count: 2}}, summary.ByMerchant)
}

func TestAnalyticsService_SummaryEmpty(t *testing.T) {
	summary, err := newAnalytics(memory.New()).Summary(context.Background(), repository.ClickFilter{Limit: 50})
	require.NoError(t, err)
	assert.NotNil(t, summary.Clicks)
	assert.Empty(t, summary.Clicks)
	assert.Len(t, summary.Daily, 30)
}

func TestAnalyticsService_SummaryError(t *testing.T) {
	store := failingClicks{memory.New()}
	_, err := newAnalytics(store).Summary(context.Background(), repository.ClickFilter{Limit: 50})
	assert.Error(t, err)
}

func TestParseClickFilter(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	t.Run("defaults", func(t *testing.T) {
		f, err := ParseClickFilter(url.Values{})
		require.NoError(t, err)
		assert.Equal(t, DefaultClickLimit, f.Limit)
		assert.Zero(t, f.Offset)
		assert.Nil(t, f.Start)
		assert.Nil(t, f.End)
	})

	t.Run("full", func(t *testing.T) {
		f, err := ParseClickFilter(url.Values{
			"merchant":  {"amazon"},
			"type":      {"deal"},
			"startDate": {"2026-07-01"},
			"endDate":   {"2026-07-31"},
			"limit":     {"10"},
			"offset":    {"20"},
		})
		require.NoError(t, err)
		assert.Equal(t, "amazon", f.Merchant)
		assert.Equal(t, domain.KindDeal, f.Type)
		assert.Equal(t, day("2026-07-01"), *f.Start)
		// the end date covers the whole day
		assert.Equal(t, day("2026-08-01"), *f.End)
		assert.Equal(t, 10, f.Limit)
		assert.Equal(t, 20, f.Offset)
	})

	t.Run("rfc3339", func(t *testing.T) {
		f, err := ParseClickFilter(url.Values{"endDate": {"2026-07-31T10:00:00+05:30"}})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 7, 31, 4, 30, 0, 0, time.UTC), *f.End)
	})

	t.Run("limit capped", func(t *testing.T) {
		f, err := ParseClickFilter(url.Values{"limit": {"10000"}})
		require.NoError(t, err)
		assert.Equal(t, MaxClickLimit, f.Limit)
	})

	for name, q := range map[string]url.Values{
		"bad type":       {"type": {"comment"}},
		"bad date":       {"startDate": {"31/07/2026"}},
		"reversed range": {"startDate": {"2026-07-10"}, "endDate": {"2026-07-01"}},
		"zero limit":     {"limit": {"0"}},
		"text limit":     {"limit": {"ten"}},
		"negative skip":  {"offset": {"-1"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseClickFilter(q)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}
