package model

import (
	"time"
)

// Comment 挂在文章或论坛帖子下，二者取其一
type Comment struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	AuthorID    uint64    `gorm:"not null;index:idx_comments_author_id" json:"author_id"`
	ArticleID   *uint64   `gorm:"index:idx_comments_article_id" json:"article_id"`
	ForumPostID *uint64   `gorm:"index:idx_comments_forum_post_id" json:"forum_post_id"`
	ParentID    *uint64   `gorm:"index:idx_comments_parent_id" json:"parent_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsDeleted   bool      `gorm:"type:tinyint(1);not null" json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
