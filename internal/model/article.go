package model

import (
	"time"
)

type Article struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	AuthorID    uint64     `gorm:"not null;index:idx_articles_author_id" json:"author_id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_articles_slug" json:"slug"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Category    string     `gorm:"type:varchar(50)" json:"category"`
	Status      string     `gorm:"type:varchar(20);not null;default:draft;index:idx_articles_status_views,priority:1" json:"status"` // draft, published, archived
	Views       int64      `gorm:"not null;default:0;index:idx_articles_status_views,priority:2" json:"views"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// 关联关系
	Research *ResearchArticle `gorm:"foreignKey:ArticleID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment        `gorm:"foreignKey:ArticleID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Article) TableName() string {
	return "articles"
}
