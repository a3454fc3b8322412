package dto

import "time"

// PaginationDTO 分页信息
type PaginationDTO struct {
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

// ResearchArticleDTO 研究文章
type ResearchArticleDTO struct {
	ID            uint64     `json:"id"`
	ArticleID     uint64     `json:"article_id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	AuthorID      uint64     `json:"author_id"`
	Views         int64      `json:"views"`
	PublishedAt   *time.Time `json:"published_at"`
	ResearchType  string     `json:"research_type"`
	PeerReviewed  bool       `json:"peer_reviewed"`
	DOI           string     `json:"doi"`
	CitationCount int64      `json:"citation_count"`
	ResearchPhase string     `json:"research_phase"`
	DownloadCount int64      `json:"download_count"`
	ShareCount    int64      `json:"share_count"`
	BookmarkCount int64      `json:"bookmark_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ResearchArticleListDTO struct {
	Articles   []*ResearchArticleDTO `json:"articles"`
	Pagination *PaginationDTO        `json:"pagination"`
}

// AddCitationDTO 新增引用
type AddCitationDTO struct {
	CitingWorkTitle   string     `json:"citing_work_title" validate:"required,max=300"`
	CitingWorkAuthors string     `json:"citing_work_authors"`
	CitingWorkURL     string     `json:"citing_work_url" validate:"omitempty,url"`
	CitingWorkDOI     string     `json:"citing_work_doi" validate:"omitempty,max=100"`
	CitationContext   string     `json:"citation_context"`
	CitationDate      *time.Time `json:"citation_date"`
}

type CitationDTO struct {
	ID                uint64     `json:"id"`
	ResearchArticleID uint64     `json:"research_article_id"`
	CitingWorkTitle   string     `json:"citing_work_title"`
	CitingWorkAuthors string     `json:"citing_work_authors"`
	CitingWorkURL     string     `json:"citing_work_url"`
	CitingWorkDOI     string     `json:"citing_work_doi"`
	CitationContext   string     `json:"citation_context"`
	CitationDate      *time.Time `json:"citation_date"`
	Verified          bool       `json:"verified"`
	CreatedAt         time.Time  `json:"created_at"`
}
