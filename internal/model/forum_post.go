package model

import (
	"time"
)

type ForumPost struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	AuthorID  uint64    `gorm:"not null;index:idx_forum_posts_author_id" json:"author_id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsPinned  bool      `gorm:"type:tinyint(1);not null" json:"is_pinned"`
	IsLocked  bool      `gorm:"type:tinyint(1);not null" json:"is_locked"`
	Views     int64     `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `gorm:"index:idx_forum_posts_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"index:idx_forum_posts_updated_at" json:"updated_at"`

	// 关联关系
	Discussion *Discussion `gorm:"foreignKey:ForumPostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Comments   []Comment   `gorm:"foreignKey:ForumPostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ForumPost) TableName() string {
	return "forum_posts"
}
