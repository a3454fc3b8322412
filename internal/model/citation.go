package model

import (
	"time"
)

type Citation struct {
	ID                uint64     `gorm:"primaryKey" json:"id"`
	ResearchArticleID uint64     `gorm:"not null;index:idx_citations_research_article_id" json:"research_article_id"`
	CitingWorkTitle   string     `gorm:"type:varchar(300);not null" json:"citing_work_title"`
	CitingWorkAuthors string     `gorm:"type:text" json:"citing_work_authors"`
	CitingWorkURL     string     `gorm:"type:varchar(500)" json:"citing_work_url"`
	CitingWorkDOI     string     `gorm:"type:varchar(100)" json:"citing_work_doi"`
	CitationContext   string     `gorm:"type:text" json:"citation_context"`
	CitationDate      *time.Time `json:"citation_date"`
	Verified          bool       `gorm:"type:tinyint(1);not null" json:"verified"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (Citation) TableName() string {
	return "citations"
}
