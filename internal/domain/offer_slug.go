package domain

import "time"

// OfferSlug резервирует slug в общем пространстве имен скидок и купонов.
// Первичный ключ по slug не дает купону и скидке получить одинаковый адрес /visit/{slug}.
type OfferSlug struct {
	Slug      string    `gorm:"primaryKey;column:slug;size:120" json:"slug"`
	Kind      OfferKind `gorm:"column:kind;size:10;not null" json:"kind"`
	OfferID   string    `gorm:"column:offer_id;size:36;not null" json:"offer_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName возвращает название таблицы для GORM
func (OfferSlug) TableName() string {
	return "offer_slugs"
}
