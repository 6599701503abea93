package service

import (
	"Dealbies-Backend/internal/affiliate"
	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// NotFoundPath страница сайта для неизвестного slug
const NotFoundPath = "/not-found"

// ClickRecorder сохраняет строку журнала переходов
type ClickRecorder interface {
	Record(ctx context.Context, click *domain.ClickTracking) error
}

// RequestMeta метаданные входящего запроса, все поля необязательны
type RequestMeta struct {
	UserAgent string
	IPAddress string
	Referer   string
}

// Resolution результат разрешения slug
type Resolution struct {
	Location string
	Kind     domain.OfferKind // пусто, если предложение не найдено
	Tracked  bool
}

// Redirector разрешает slug в партнерскую ссылку и пишет клик
type Redirector struct {
	storage repository.Storage
	rules   affiliate.Rules
	clicks  ClickRecorder
	log     *zap.Logger
}

func NewRedirector(storage repository.Storage, rules affiliate.Rules, clicks ClickRecorder, log *zap.Logger) *Redirector {
	return &Redirector{
		storage: storage,
		rules:   rules,
		clicks:  clicks,
		log:     log,
	}
}

// Resolve ищет сначала скидку, затем купон. Ошибка возвращается только при сбое хранилища.
func (r *Redirector) Resolve(ctx context.Context, slug string, meta RequestMeta) (Resolution, error) {
	deal, err := r.storage.GetDealBySlug(ctx, slug)
	if err == nil {
		if deal.Expired {
			return Resolution{Location: deal.DetailPath(), Kind: domain.KindDeal}, nil
		}
		return r.track(ctx, slug, domain.KindDeal, deal.URL, deal.Merchant, meta), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return Resolution{}, fmt.Errorf("failed to look up deal: %w", err)
	}

	coupon, err := r.storage.GetCouponBySlug(ctx, slug)
	if err == nil {
		if coupon.Expired {
			return Resolution{Location: coupon.DetailPath(), Kind: domain.KindCoupon}, nil
		}
		return r.track(ctx, slug, domain.KindCoupon, coupon.URL, coupon.Merchant, meta), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return Resolution{}, fmt.Errorf("failed to look up coupon: %w", err)
	}

	return Resolution{Location: NotFoundPath}, nil
}

func (r *Redirector) track(ctx context.Context, slug string, kind domain.OfferKind, destination, merchant string, meta RequestMeta) Resolution {
	final := r.rules.Augment(destination, merchant)
	if merchant == "" {
		merchant = affiliate.MerchantName(destination)
	}

	click := &domain.ClickTracking{
		Slug:        truncate(slug, domain.MaxClickSlugLen),
		Type:        kind,
		OriginalURL: destination,
		FinalURL:    final,
		Merchant:    truncate(merchant, domain.MaxClickMerchantLen),
		UserAgent:   optional(meta.UserAgent),
		IPAddress:   clipped(meta.IPAddress, domain.MaxIPAddressLen),
		Referer:     clipped(meta.Referer, domain.MaxRefererLen),
	}

	// потеря клика допустима, переход важнее
	if err := r.clicks.Record(ctx, click); err != nil {
		r.log.Error("failed to record click",
			zap.String("slug", slug),
			zap.String("type", string(kind)),
			zap.Error(err))
		return Resolution{Location: final, Kind: kind}
	}

	return Resolution{Location: final, Kind: kind, Tracked: true}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// clipped как optional, но обрезает значение под ширину колонки
func clipped(s string, limit int) *string {
	return optional(truncate(s, limit))
}

// truncate оставляет не больше limit символов (не байт)
func truncate(s string, limit int) string {
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
