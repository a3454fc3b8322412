package dto

import "time"

// DiscussionDTO 讨论帖
type DiscussionDTO struct {
	ID               uint64    `json:"id"`
	ForumPostID      uint64    `json:"forum_post_id"`
	Title            string    `json:"title"`
	AuthorID         uint64    `json:"author_id"`
	Views            int64     `json:"views"`
	DiscussionType   string    `json:"discussion_type"`
	ComplexityLevel  string    `json:"complexity_level"`
	ResolutionStatus string    `json:"resolution_status"`
	IsFeatured       bool      `json:"is_featured"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type DiscussionListDTO struct {
	Discussions []*DiscussionDTO `json:"discussions"`
	Pagination  *PaginationDTO   `json:"pagination"`
}
