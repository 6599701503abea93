package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment комментарий к скидке или купону
type Comment struct {
	ID         string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	UserID     string    `gorm:"column:user_id;size:64;not null;index" json:"user_id"`
	TargetType string    `gorm:"column:target_type;size:16;not null;index:idx_comments_target,priority:1" json:"target_type"`
	TargetID   string    `gorm:"column:target_id;size:36;not null;index:idx_comments_target,priority:2" json:"target_id"`
	Content    string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Votes []Vote `gorm:"polymorphic:Target;polymorphicValue:comment" json:"votes,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate выдает идентификатор новым записям
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
