package model

import (
	"time"
)

// Discussion 论坛帖子的分类信息
type Discussion struct {
	ID               uint64    `gorm:"primaryKey" json:"id"`
	ForumPostID      uint64    `gorm:"not null;uniqueIndex:idx_discussions_forum_post_id" json:"forum_post_id"`
	DiscussionType   string    `gorm:"type:varchar(50);not null;index:idx_discussions_discussion_type" json:"discussion_type"` // general, research, collaboration, support, announcement
	ComplexityLevel  string    `gorm:"type:varchar(20);not null;default:beginner" json:"complexity_level"`
	ResolutionStatus string    `gorm:"type:varchar(20);not null;default:open" json:"resolution_status"` // open, resolved, ongoing, closed
	IsFeatured       bool      `gorm:"type:tinyint(1);not null" json:"is_featured"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	ForumPost ForumPost `gorm:"foreignKey:ForumPostID;references:ID" json:"-"`
}

func (Discussion) TableName() string {
	return "discussions"
}
