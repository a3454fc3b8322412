package model

import (
	"time"
)

type ResearchArticle struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	ArticleID     uint64    `gorm:"not null;uniqueIndex:idx_research_articles_article_id" json:"article_id"`
	ResearchType  string    `gorm:"type:varchar(50);not null" json:"research_type"` // theory, experiment, analysis, review
	PeerReviewed  bool      `gorm:"type:tinyint(1);not null" json:"peer_reviewed"`
	DOI           string    `gorm:"type:varchar(100)" json:"doi"`
	CitationCount int64     `gorm:"not null;default:0" json:"citation_count"`
	ResearchPhase string    `gorm:"type:varchar(50)" json:"research_phase"`
	DownloadCount int64     `gorm:"not null;default:0" json:"download_count"`
	ShareCount    int64     `gorm:"not null;default:0" json:"share_count"`
	BookmarkCount int64     `gorm:"not null;default:0" json:"bookmark_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Article   Article    `gorm:"foreignKey:ArticleID;references:ID" json:"-"`
	Citations []Citation `gorm:"foreignKey:ResearchArticleID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ResearchArticle) TableName() string {
	return "research_articles"
}
