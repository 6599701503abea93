package domain

import "time"

// VoteDirection направление голоса
type VoteDirection string

const (
	VoteUp   VoteDirection = "UP"
	VoteDown VoteDirection = "DOWN"
)

// Valid проверяет допустимость направления
func (d VoteDirection) Valid() bool {
	return d == VoteUp || d == VoteDown
}

// Цели голосования (значения полиморфной связи)
const (
	TargetDeal    = "deal"
	TargetCoupon  = "coupon"
	TargetComment = "comment"
)

// Vote голос пользователя за скидку, купон или комментарий.
// Уникальный индекс гарантирует один голос на пару (пользователь, цель).
type Vote struct {
	ID         int64         `gorm:"primaryKey;column:id" json:"id"`
	UserID     string        `gorm:"column:user_id;size:64;not null;uniqueIndex:idx_votes_user_target,priority:1" json:"user_id"`
	TargetType string        `gorm:"column:target_type;size:16;not null;uniqueIndex:idx_votes_user_target,priority:2;index:idx_votes_target,priority:1" json:"target_type"`
	TargetID   string        `gorm:"column:target_id;size:36;not null;uniqueIndex:idx_votes_user_target,priority:3;index:idx_votes_target,priority:2" json:"target_id"`
	Direction  VoteDirection `gorm:"column:direction;size:4;not null" json:"direction"`
	CreatedAt  time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (Vote) TableName() string {
	return "votes"
}
