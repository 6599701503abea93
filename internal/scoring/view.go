package scoring

import (
	"time"

	"Dealbies-Backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Poster is the public identity of the user who submitted an offer.
type Poster struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
}

// DealView is the flattened listing representation of a deal.
type DealView struct {
	ID            string                `json:"id"`
	Slug          string                `json:"slug"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Price         decimal.Decimal       `json:"price"`
	OriginalPrice *decimal.Decimal      `json:"originalPrice,omitempty"`
	Merchant      string                `json:"merchant"`
	Category      string                `json:"category"`
	URL           string                `json:"url"`
	ExpiresAt     *time.Time            `json:"expiresAt,omitempty"`
	Expired       bool                  `json:"expired"`
	Score         int                   `json:"score"`
	CommentCount  int64                 `json:"commentCount"`
	User          *Poster               `json:"user,omitempty"`
	UserVote      *domain.VoteDirection `json:"userVote,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
}

func (v DealView) RankScore() int           { return v.Score }
func (v DealView) RankComments() int64      { return v.CommentCount }
func (v DealView) RankCreatedAt() time.Time { return v.CreatedAt }

// CouponView is the flattened listing representation of a coupon.
type CouponView struct {
	ID            string                `json:"id"`
	Slug          string                `json:"slug"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Code          string                `json:"code"`
	DiscountType  domain.DiscountType   `json:"discountType"`
	DiscountValue decimal.Decimal       `json:"discountValue"`
	Merchant      string                `json:"merchant"`
	Category      string                `json:"category"`
	URL           string                `json:"url"`
	ExpiresAt     *time.Time            `json:"expiresAt,omitempty"`
	Expired       bool                  `json:"expired"`
	Images        []string              `json:"images,omitempty"`
	Score         int                   `json:"score"`
	CommentCount  int64                 `json:"commentCount"`
	User          *Poster               `json:"user,omitempty"`
	UserVote      *domain.VoteDirection `json:"userVote,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
}

func (v CouponView) RankScore() int           { return v.Score }
func (v CouponView) RankComments() int64      { return v.CommentCount }
func (v CouponView) RankCreatedAt() time.Time { return v.CreatedAt }

// NewDealView builds the listing view of a deal for the given viewer
// (empty viewerID for anonymous requests).
func NewDealView(d *domain.Deal, viewerID string) DealView {
	return DealView{
		ID:            d.ID,
		Slug:          d.Slug,
		Title:         d.Title,
		Description:   d.Description,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Merchant:      d.Merchant,
		Category:      d.Category,
		URL:           d.URL,
		ExpiresAt:     d.ExpiresAt,
		Expired:       d.Expired,
		Score:         Score(d.Votes),
		CommentCount:  d.CommentCount,
		User:          newPoster(d.User),
		UserVote:      ViewerVote(d.Votes, viewerID),
		CreatedAt:     d.CreatedAt,
	}
}

// NewCouponView builds the listing view of a coupon for the given viewer.
func NewCouponView(c *domain.Coupon, viewerID string) CouponView {
	var images []string
	for _, img := range c.Images {
		images = append(images, img.URL)
	}

	return CouponView{
		ID:            c.ID,
		Slug:          c.Slug,
		Title:         c.Title,
		Description:   c.Description,
		Code:          c.Code,
		DiscountType:  c.DiscountType,
		DiscountValue: c.DiscountValue,
		Merchant:      c.Merchant,
		Category:      c.Category,
		URL:           c.URL,
		ExpiresAt:     c.ExpiresAt,
		Expired:       c.Expired,
		Images:        images,
		Score:         Score(c.Votes),
		CommentCount:  c.CommentCount,
		User:          newPoster(c.User),
		UserVote:      ViewerVote(c.Votes, viewerID),
		CreatedAt:     c.CreatedAt,
	}
}

func newPoster(u *domain.User) *Poster {
	if u == nil {
		return nil
	}
	return &Poster{
		ID:     u.ID,
		Name:   u.DisplayName(),
		Avatar: u.Avatar,
	}
}
