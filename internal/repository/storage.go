package repository

import (
	"Dealbies-Backend/internal/domain"
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrSlugExists   = errors.New("slug already exists")
	ErrUserNotFound = errors.New("user not found")
)

// OfferFilter параметры выборки скидок и купонов
type OfferFilter struct {
	Category string
}

// ClickFilter параметры выборки журнала кликов
type ClickFilter struct {
	Merchant string
	Type     domain.OfferKind
	Start    *time.Time // включительно
	End      *time.Time // исключительно
	Limit    int
	Offset   int
}

// GroupCount количество кликов в группе
type GroupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type Storage interface {
	// User methods
	FindOrCreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)

	// Offer methods
	CreateDeal(ctx context.Context, deal *domain.Deal) error
	CreateCoupon(ctx context.Context, coupon *domain.Coupon) error
	GetDealBySlug(ctx context.Context, slug string) (*domain.Deal, error)
	GetCouponBySlug(ctx context.Context, slug string) (*domain.Coupon, error)
	GetDealByID(ctx context.Context, id string) (*domain.Deal, error)
	GetCouponByID(ctx context.Context, id string) (*domain.Coupon, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListDeals(ctx context.Context, filter OfferFilter) ([]*domain.Deal, error)
	ListCoupons(ctx context.Context, filter OfferFilter) ([]*domain.Coupon, error)

	// Vote methods
	GetVote(ctx context.Context, userID, targetType, targetID string) (*domain.Vote, error)
	UpsertVote(ctx context.Context, vote *domain.Vote) error
	DeleteVote(ctx context.Context, userID, targetType, targetID string) error
	ListVotes(ctx context.Context, targetType, targetID string) ([]domain.Vote, error)

	// Click tracking methods
	SaveClick(ctx context.Context, click *domain.ClickTracking) error
	ListClicks(ctx context.Context, filter ClickFilter) ([]*domain.ClickTracking, int64, error)
	CountClicksBy(ctx context.Context, filter ClickFilter, column string) ([]GroupCount, error)
	ClickTimes(ctx context.Context, since time.Time) ([]time.Time, error)

	// Settings
	GetSiteSettings(ctx context.Context) (*domain.SiteSettings, error)

	Ping(ctx context.Context) error
}
