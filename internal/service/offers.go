package service

import (
	"Dealbies-Backend/internal/affiliate"
	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/repository"
	"Dealbies-Backend/internal/scoring"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	maxRetries    = 5
	maxSlugBase   = 80
	slugSuffixLen = 6
)

// DealInput контракт запроса на публикацию скидки
type DealInput struct {
	Title         string           `json:"title" validate:"required,notblank,max=200"`
	Description   string           `json:"description" validate:"max=5000"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Merchant      string           `json:"merchant" validate:"max=100"`
	Category      string           `json:"category" validate:"required,notblank,max=100"`
	URL           string           `json:"url" validate:"required,http_url"`
	ExpiresAt     *time.Time       `json:"expiresAt,omitempty"`
}

// CouponInput контракт запроса на публикацию купона
type CouponInput struct {
	Title         string              `json:"title" validate:"required,notblank,max=200"`
	Description   string              `json:"description" validate:"max=5000"`
	Code          string              `json:"code" validate:"max=64"`
	DiscountType  domain.DiscountType `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED FREEBIE"`
	DiscountValue decimal.Decimal     `json:"discountValue"`
	Merchant      string              `json:"merchant" validate:"max=100"`
	Category      string              `json:"category" validate:"required,notblank,max=100"`
	URL           string              `json:"url" validate:"required,http_url"`
	ExpiresAt     *time.Time          `json:"expiresAt,omitempty"`
	Images        []string            `json:"images,omitempty" validate:"max=5,dive,http_url"`
}

// OfferService выдает ленты скидок и купонов и принимает новые предложения
type OfferService struct {
	storage repository.Storage
	log     *zap.Logger
	now     func() time.Time
}

func NewOfferService(storage repository.Storage, log *zap.Logger) *OfferService {
	return &OfferService{
		storage: storage,
		log:     log,
		now:     time.Now,
	}
}

// ListDeals возвращает ленту скидок в заданном порядке для зрителя (viewerID пуст для анонимов)
func (s *OfferService) ListDeals(ctx context.Context, category string, mode scoring.SortMode, viewerID string) ([]scoring.DealView, error) {
	deals, err := s.storage.ListDeals(ctx, repository.OfferFilter{Category: category})
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}

	views := make([]scoring.DealView, 0, len(deals))
	for _, d := range deals {
		views = append(views, scoring.NewDealView(d, viewerID))
	}
	scoring.Sort(views, mode)

	return views, nil
}

// ListCoupons возвращает ленту купонов в заданном порядке
func (s *OfferService) ListCoupons(ctx context.Context, category string, mode scoring.SortMode, viewerID string) ([]scoring.CouponView, error) {
	coupons, err := s.storage.ListCoupons(ctx, repository.OfferFilter{Category: category})
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	views := make([]scoring.CouponView, 0, len(coupons))
	for _, c := range coupons {
		views = append(views, scoring.NewCouponView(c, viewerID))
	}
	scoring.Sort(views, mode)

	return views, nil
}

// CreateDeal публикует скидку от имени автора
func (s *OfferService) CreateDeal(ctx context.Context, author *domain.User, in DealInput) (*scoring.DealView, error) {
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidRequest)
	}
	if in.OriginalPrice != nil && in.OriginalPrice.LessThan(in.Price) {
		return nil, fmt.Errorf("%w: originalPrice must not be below price", ErrInvalidRequest)
	}
	if err := s.checkExpiry(in.ExpiresAt); err != nil {
		return nil, err
	}

	user, err := s.storage.FindOrCreateUser(ctx, author)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve author: %w", err)
	}

	deal := &domain.Deal{
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Merchant:      merchantOrDefault(in.Merchant, in.URL),
		Category:      strings.TrimSpace(in.Category),
		URL:           in.URL,
		ExpiresAt:     in.ExpiresAt,
		UserID:        user.ID,
	}

	err = s.withUniqueSlug(ctx, deal.Title, func(slug string) error {
		deal.Slug = slug
		return s.storage.CreateDeal(ctx, deal)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("deal published", zap.String("slug", deal.Slug), zap.String("user_id", user.ID))

	deal.User = user
	view := scoring.NewDealView(deal, user.ID)
	return &view, nil
}

// CreateCoupon публикует купон от имени автора
func (s *OfferService) CreateCoupon(ctx context.Context, author *domain.User, in CouponInput) (*scoring.CouponView, error) {
	switch in.DiscountType {
	case domain.DiscountPercentage:
		if !in.DiscountValue.IsPositive() || in.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: percentage discount must be within (0, 100]", ErrInvalidRequest)
		}
	case domain.DiscountFixed:
		if !in.DiscountValue.IsPositive() {
			return nil, fmt.Errorf("%w: fixed discount must be positive", ErrInvalidRequest)
		}
	case domain.DiscountFreebie:
		in.DiscountValue = decimal.Zero
	}
	if err := s.checkExpiry(in.ExpiresAt); err != nil {
		return nil, err
	}

	user, err := s.storage.FindOrCreateUser(ctx, author)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve author: %w", err)
	}

	coupon := &domain.Coupon{
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Code:          strings.TrimSpace(in.Code),
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
		Merchant:      merchantOrDefault(in.Merchant, in.URL),
		Category:      strings.TrimSpace(in.Category),
		URL:           in.URL,
		ExpiresAt:     in.ExpiresAt,
		UserID:        user.ID,
	}
	for _, img := range in.Images {
		coupon.Images = append(coupon.Images, domain.CouponImage{URL: img})
	}

	err = s.withUniqueSlug(ctx, coupon.Title, func(slug string) error {
		coupon.Slug = slug
		return s.storage.CreateCoupon(ctx, coupon)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("coupon published", zap.String("slug", coupon.Slug), zap.String("user_id", user.ID))

	coupon.User = user
	view := scoring.NewCouponView(coupon, user.ID)
	return &view, nil
}

// withUniqueSlug подбирает свободный slug и вызывает create, повторяя при коллизии
func (s *OfferService) withUniqueSlug(ctx context.Context, title string, create func(slug string) error) error {
	base := Slugify(title)

	for i := 0; i < maxRetries; i++ {
		slug := base + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:slugSuffixLen]

		exists, err := s.storage.SlugExists(ctx, slug)
		if err != nil {
			return fmt.Errorf("failed to check slug existence: %w", err)
		}
		if exists {
			continue
		}

		err = create(slug)
		if errors.Is(err, repository.ErrSlugExists) {
			// slug заняли между проверкой и вставкой
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to save offer: %w", err)
		}
		return nil
	}

	return ErrSlugGeneration
}

func (s *OfferService) checkExpiry(expiresAt *time.Time) error {
	if expiresAt != nil && !expiresAt.After(s.now()) {
		return fmt.Errorf("%w: expiresAt must be in the future", ErrInvalidRequest)
	}
	return nil
}

// Slugify приводит заголовок к виду a-z0-9 через дефис
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
		if b.Len() >= maxSlugBase {
			break
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "offer"
	}
	return slug
}

func merchantOrDefault(merchant, rawURL string) string {
	if m := strings.TrimSpace(merchant); m != "" {
		return m
	}
	return affiliate.MerchantName(rawURL)
}
