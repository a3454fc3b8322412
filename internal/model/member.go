package model

import (
	"time"
)

// Member 社区成员，只做软停用
type Member struct {
	ID           uint64     `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"type:varchar(80);not null;uniqueIndex:idx_members_username" json:"username"`
	Email        string     `gorm:"type:varchar(120);not null;uniqueIndex:idx_members_email" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:user" json:"role"`
	IsActive     bool       `gorm:"type:tinyint(1);not null;index:idx_members_active_login,priority:1" json:"is_active"`
	CreatedAt    time.Time  `gorm:"index:idx_members_created_at" json:"created_at"`
	LastLogin    *time.Time `gorm:"index:idx_members_active_login,priority:2" json:"last_login"`
}

func (Member) TableName() string {
	return "members"
}
