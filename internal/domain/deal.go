package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OfferKind различает сущности, на которые указывает slug
type OfferKind string

const (
	KindDeal   OfferKind = "deal"
	KindCoupon OfferKind = "coupon"
)

// Deal представляет скидку на конкретный товар
type Deal struct {
	ID            string           `gorm:"primaryKey;column:id;size:36" json:"id"`
	Slug          string           `gorm:"column:slug;size:120;uniqueIndex;not null" json:"slug"`
	Title         string           `gorm:"column:title;size:200;not null" json:"title"`
	Description   string           `gorm:"column:description;type:text" json:"description"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric(12,2)" json:"original_price,omitempty"`
	Merchant      string           `gorm:"column:merchant;size:100;index" json:"merchant"`
	Category      string           `gorm:"column:category;size:100;index" json:"category"`
	URL           string           `gorm:"column:url;type:text;not null" json:"url"`
	ExpiresAt     *time.Time       `gorm:"column:expires_at" json:"expires_at,omitempty"`
	Expired       bool             `gorm:"column:expired;not null;default:false" json:"expired"`
	UserID        string           `gorm:"column:user_id;size:64;not null;index" json:"user_id"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Заполняется репозиторием отдельным агрегирующим запросом
	CommentCount int64 `gorm:"-" json:"comment_count"`

	// Relationships
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Votes    []Vote    `gorm:"polymorphic:Target;polymorphicValue:deal" json:"votes,omitempty"`
	Comments []Comment `gorm:"polymorphic:Target;polymorphicValue:deal" json:"comments,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (Deal) TableName() string {
	return "deals"
}

// BeforeCreate выдает идентификатор новым записям
func (d *Deal) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DetailPath возвращает путь страницы скидки на сайте
func (d *Deal) DetailPath() string {
	return "/deal/" + d.Slug
}
