package domain

import "time"

// Role определяет уровень доступа пользователя
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User представляет пользователя сайта. ID совпадает с subject токена
// внешнего identity provider, поэтому генерируется не здесь.
type User struct {
	ID        string    `gorm:"primaryKey;column:id;size:64" json:"id"`
	Email     *string   `gorm:"column:email;uniqueIndex" json:"email,omitempty"`
	Username  *string   `gorm:"column:username;uniqueIndex;size:64" json:"username,omitempty"`
	Avatar    *string   `gorm:"column:avatar;size:500" json:"avatar,omitempty"`
	Role      Role      `gorm:"column:role;size:10;not null;default:USER" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Deals   []Deal   `gorm:"foreignKey:UserID" json:"-"`
	Coupons []Coupon `gorm:"foreignKey:UserID" json:"-"`
}

// TableName возвращает название таблицы для GORM
func (User) TableName() string {
	return "users"
}

// IsAdmin проверяет административную роль
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName возвращает имя для карточки автора
func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	if u.Email != nil {
		return *u.Email
	}
	return "anonymous"
}
