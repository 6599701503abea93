package domain

import "time"

// Ширины колонок журнала кликов. Значения длиннее обрезаются до записи
const (
	MaxClickSlugLen     = 120
	MaxClickMerchantLen = 100
	MaxIPAddressLen     = 45
	MaxRefererLen       = 500
	MaxDeviceTypeLen    = 10
	MaxBrowserLen       = 50
	MaxOSLen            = 50
)

// ClickTracking представляет переход по партнерской ссылке.
// Журнал только дополняется, приложение строки не меняет и не удаляет.
type ClickTracking struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	Slug        string    `gorm:"column:slug;size:120;not null;index" json:"slug"`
	Type        OfferKind `gorm:"column:type;size:10;not null;index" json:"type"`
	OriginalURL string    `gorm:"column:original_url;type:text;not null" json:"original_url"`
	FinalURL    string    `gorm:"column:final_url;type:text;not null" json:"final_url"`
	Merchant    string    `gorm:"column:merchant;size:100;index" json:"merchant"`
	UserAgent   *string   `gorm:"column:user_agent;type:text" json:"user_agent,omitempty"`
	IPAddress   *string   `gorm:"column:ip_address;size:45" json:"ip_address,omitempty"`
	Referer     *string   `gorm:"column:referer;size:500" json:"referer,omitempty"`
	DeviceType  *string   `gorm:"column:device_type;size:10" json:"device_type,omitempty"` // 'desktop', 'mobile', 'tablet', 'bot'
	Browser     *string   `gorm:"column:browser;size:50" json:"browser,omitempty"`
	OS          *string   `gorm:"column:os;size:50" json:"os,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

// TableName возвращает название таблицы для GORM
func (ClickTracking) TableName() string {
	return "click_tracking"
}

// GetDeviceType возвращает тип устройства или "unknown"
func (c *ClickTracking) GetDeviceType() string {
	if c.DeviceType != nil {
		return *c.DeviceType
	}
	return "unknown"
}
