package domain

import "time"

// SiteSettings глобальные настройки сайта (одна строка)
type SiteSettings struct {
	ID              int64     `gorm:"primaryKey;column:id" json:"id"`
	SiteName        string    `gorm:"column:site_name;size:100;not null" json:"site_name"`
	SiteURL         string    `gorm:"column:site_url;size:255;not null" json:"site_url"`
	Tagline         string    `gorm:"column:tagline;size:255" json:"tagline"`
	LogoURL         *string   `gorm:"column:logo_url;size:500" json:"logo_url,omitempty"`
	ContactEmail    *string   `gorm:"column:contact_email;size:255" json:"contact_email,omitempty"`
	DealsPerPage    int       `gorm:"column:deals_per_page;not null;default:20" json:"deals_per_page"`
	MaintenanceMode bool      `gorm:"column:maintenance_mode;not null;default:false" json:"maintenance_mode"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName возвращает название таблицы для GORM
func (SiteSettings) TableName() string {
	return "site_settings"
}

// SchemaMarkupSettings настройки structured data (schema.org) для страниц
type SchemaMarkupSettings struct {
	ID               int64     `gorm:"primaryKey;column:id" json:"id"`
	OrganizationName string    `gorm:"column:organization_name;size:100;not null" json:"organization_name"`
	OrganizationLogo *string   `gorm:"column:organization_logo;size:500" json:"organization_logo,omitempty"`
	EnableOffers     bool      `gorm:"column:enable_offers;not null;default:true" json:"enable_offers"`
	EnableBreadcrumb bool      `gorm:"column:enable_breadcrumb;not null;default:true" json:"enable_breadcrumb"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName возвращает название таблицы для GORM
func (SchemaMarkupSettings) TableName() string {
	return "schema_markup_settings"
}
