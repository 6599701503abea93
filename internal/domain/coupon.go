package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountType тип скидки купона
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
	DiscountFreebie    DiscountType = "FREEBIE"
)

// Coupon представляет промокод магазина
type Coupon struct {
	ID            string          `gorm:"primaryKey;column:id;size:36" json:"id"`
	Slug          string          `gorm:"column:slug;size:120;uniqueIndex;not null" json:"slug"`
	Title         string          `gorm:"column:title;size:200;not null" json:"title"`
	Description   string          `gorm:"column:description;type:text" json:"description"`
	Code          string          `gorm:"column:code;size:64" json:"code"`
	DiscountType  DiscountType    `gorm:"column:discount_type;size:16;not null" json:"discount_type"`
	DiscountValue decimal.Decimal `gorm:"column:discount_value;type:numeric(12,2)" json:"discount_value"`
	Merchant      string          `gorm:"column:merchant;size:100;index" json:"merchant"`
	Category      string          `gorm:"column:category;size:100;index" json:"category"`
	URL           string          `gorm:"column:url;type:text;not null" json:"url"`
	ExpiresAt     *time.Time      `gorm:"column:expires_at" json:"expires_at,omitempty"`
	Expired       bool            `gorm:"column:expired;not null;default:false" json:"expired"`
	UserID        string          `gorm:"column:user_id;size:64;not null;index" json:"user_id"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	CommentCount int64 `gorm:"-" json:"comment_count"`

	// Relationships
	User     *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Votes    []Vote        `gorm:"polymorphic:Target;polymorphicValue:coupon" json:"votes,omitempty"`
	Comments []Comment     `gorm:"polymorphic:Target;polymorphicValue:coupon" json:"comments,omitempty"`
	Images   []CouponImage `gorm:"foreignKey:CouponID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (Coupon) TableName() string {
	return "coupons"
}

// BeforeCreate выдает идентификатор новым записям
func (c *Coupon) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// DetailPath возвращает путь страницы купона на сайте
func (c *Coupon) DetailPath() string {
	return "/coupon/" + c.Slug
}

// CouponImage изображение купона, загруженное в CDN
type CouponImage struct {
	ID        int64     `gorm:"primaryKey;column:id" json:"id"`
	CouponID  string    `gorm:"column:coupon_id;size:36;not null;index" json:"coupon_id"`
	URL       string    `gorm:"column:url;size:500;not null" json:"url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName возвращает название таблицы для GORM
func (CouponImage) TableName() string {
	return "coupon_images"
}
