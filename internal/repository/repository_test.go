package repository

import (
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/database/dbtest"
	"DigitalOrganisms/internal/pkg/util"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var slugSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.NewSQLite(t)
}

func seedMember(t *testing.T, db *gorm.DB, username string, active bool, createdAt time.Time, lastLogin *time.Time) *model.Member {
	t.Helper()
	m := &model.Member{
		Username:     username,
		Email:        username + "@example.org",
		PasswordHash: "x",
		IsActive:     active,
		CreatedAt:    createdAt,
		LastLogin:    lastLogin,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedArticle(t *testing.T, db *gorm.DB, authorID uint64, status string, views int64, publishedAt *time.Time) *model.Article {
	t.Helper()
	a := &model.Article{
		AuthorID:    authorID,
		Title:       fmt.Sprintf("article-%d-%d", authorID, views),
		Slug:        fmt.Sprintf("slug-%d", slugSeq.Add(1)),
		Content:     "content",
		Status:      status,
		Views:       views,
		PublishedAt: publishedAt,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func seedForumPost(t *testing.T, db *gorm.DB, title string, createdAt, updatedAt time.Time) *model.ForumPost {
	t.Helper()
	p := &model.ForumPost{
		AuthorID:  1,
		Title:     title,
		Content:   "content",
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedThreadComments(t *testing.T, db *gorm.DB, forumPostID uint64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&model.Comment{
			AuthorID:    1,
			ForumPostID: util.PtrUint64(forumPostID),
			Content:     "reply",
		}).Error)
	}
}

func seedIntegration(t *testing.T, db *gorm.DB, name, status, endpoint string, totalRequests int64) *model.Integration {
	t.Helper()
	i := &model.Integration{
		Name:            name,
		IntegrationType: "api",
		Status:          status,
		APIEndpoint:     endpoint,
		CreatedByID:     1,
		TotalRequests:   totalRequests,
	}
	require.NoError(t, db.Create(i).Error)
	return i
}
