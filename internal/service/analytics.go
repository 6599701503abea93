package service

import (
	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/repository"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultClickLimit = 50
	MaxClickLimit     = 500
	rollupDays        = 30
	dayLayout         = "2006-01-02"
)

// ClickInput контракт запроса на запись клика
type ClickInput struct {
	Slug        string `json:"slug" validate:"required,notblank,max=120"`
	Type        string `json:"type" validate:"required,oneof=deal coupon"`
	OriginalURL string `json:"originalUrl" validate:"required,url"`
	FinalURL    string `json:"finalUrl" validate:"required,url"`
	Merchant    string `json:"merchant" validate:"max=100"`
	UserAgent   string `json:"userAgent" validate:"max=1000"`
	IPAddress   string `json:"ipAddress" validate:"omitempty,ip"`
	Referer     string `json:"referer" validate:"max=500"`
}

// DailyCount число кликов за день (UTC)
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ClickSummary ответ аналитики: страница журнала, группировки и дневная свертка
type ClickSummary struct {
	Clicks     []*domain.ClickTracking `json:"clicks"`
	Total      int64                   `json:"total"`
	Limit      int                     `json:"limit"`
	Offset     int                     `json:"offset"`
	ByMerchant []repository.GroupCount `json:"byMerchant"`
	ByType     []repository.GroupCount `json:"byType"`
	Daily      []DailyCount            `json:"daily"`
}

// AnalyticsService принимает клики от клиента и строит отчеты для админки
type AnalyticsService struct {
	storage repository.Storage
	tracker *ClickTracker
	log     *zap.Logger
	now     func() time.Time
}

func NewAnalyticsService(storage repository.Storage, tracker *ClickTracker, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		storage: storage,
		tracker: tracker,
		log:     log,
		now:     time.Now,
	}
}

// RecordClick записывает клик синхронно и возвращает созданную строку
func (s *AnalyticsService) RecordClick(ctx context.Context, in ClickInput) (*domain.ClickTracking, error) {
	merchant := in.Merchant
	if merchant == "" {
		merchant = merchantOrDefault("", in.OriginalURL)
	}

	click := &domain.ClickTracking{
		Slug:        truncate(in.Slug, domain.MaxClickSlugLen),
		Type:        domain.OfferKind(in.Type),
		OriginalURL: in.OriginalURL,
		FinalURL:    in.FinalURL,
		Merchant:    truncate(merchant, domain.MaxClickMerchantLen),
		UserAgent:   optional(in.UserAgent),
		IPAddress:   clipped(in.IPAddress, domain.MaxIPAddressLen),
		Referer:     clipped(in.Referer, domain.MaxRefererLen),
	}

	if err := s.tracker.Record(ctx, click); err != nil {
		return nil, err
	}
	return click, nil
}

// Summary выполняет запросы отчета параллельно
func (s *AnalyticsService) Summary(ctx context.Context, filter repository.ClickFilter) (*ClickSummary, error) {
	summary := &ClickSummary{Limit: filter.Limit, Offset: filter.Offset}
	grouping := filter
	grouping.Limit, grouping.Offset = 0, 0

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		clicks, total, err := s.storage.ListClicks(gctx, filter)
		if err != nil {
			return err
		}
		summary.Clicks, summary.Total = clicks, total
		return nil
	})
	g.Go(func() error {
		groups, err := s.storage.CountClicksBy(gctx, grouping, "merchant")
		summary.ByMerchant = groups
		return err
	})
	g.Go(func() error {
		groups, err := s.storage.CountClicksBy(gctx, grouping, "type")
		summary.ByType = groups
		return err
	})
	g.Go(func() error {
		daily, err := s.dailyRollup(gctx)
		summary.Daily = daily
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build click summary: %w", err)
	}

	if summary.Clicks == nil {
		summary.Clicks = []*domain.ClickTracking{}
	}
	return summary, nil
}

// dailyRollup считает клики по дням за последние 30 дней, включая сегодня
func (s *AnalyticsService) dailyRollup(ctx context.Context) ([]DailyCount, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(rollupDays - 1))

	times, err := s.storage.ClickTimes(ctx, since)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, rollupDays)
	for _, t := range times {
		counts[t.UTC().Format(dayLayout)]++
	}

	daily := make([]DailyCount, 0, rollupDays)
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayLayout)
		daily = append(daily, DailyCount{Date: key, Count: counts[key]})
	}
	return daily, nil
}

// ParseClickFilter разбирает параметры запроса журнала кликов
func ParseClickFilter(q url.Values) (repository.ClickFilter, error) {
	filter := repository.ClickFilter{
		Merchant: q.Get("merchant"),
		Limit:    DefaultClickLimit,
	}

	switch t := domain.OfferKind(q.Get("type")); t {
	case "", domain.KindDeal, domain.KindCoupon:
		filter.Type = t
	default:
		return filter, fmt.Errorf("%w: type must be deal or coupon", ErrInvalidRequest)
	}

	if v := q.Get("startDate"); v != "" {
		start, _, err := parseDate(v)
		if err != nil {
			return filter, fmt.Errorf("%w: startDate: %v", ErrInvalidRequest, err)
		}
		filter.Start = &start
	}
	if v := q.Get("endDate"); v != "" {
		end, dateOnly, err := parseDate(v)
		if err != nil {
			return filter, fmt.Errorf("%w: endDate: %v", ErrInvalidRequest, err)
		}
		if dateOnly {
			// дата без времени включает весь день
			end = end.AddDate(0, 0, 1)
		}
		filter.End = &end
	}
	if filter.Start != nil && filter.End != nil && !filter.End.After(*filter.Start) {
		return filter, fmt.Errorf("%w: endDate must be after startDate", ErrInvalidRequest)
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return filter, fmt.Errorf("%w: limit must be a positive integer", ErrInvalidRequest)
		}
		if limit > MaxClickLimit {
			limit = MaxClickLimit
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return filter, fmt.Errorf("%w: offset must be a non-negative integer", ErrInvalidRequest)
		}
		filter.Offset = offset
	}

	return filter, nil
}

func parseDate(v string) (time.Time, bool, error) {
	if t, err := time.Parse(dayLayout, v); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected YYYY-MM-DD or RFC3339, got %q", v)
	}
	return t.UTC(), false, nil
}
