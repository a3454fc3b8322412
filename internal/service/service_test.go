package service

import (
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/consts"
	"DigitalOrganisms/internal/pkg/database/dbtest"
	"DigitalOrganisms/internal/pkg/redis/redistest"
	"DigitalOrganisms/internal/pkg/util"
	"DigitalOrganisms/internal/repository"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seq atomic.Int64

type testEnv struct {
	db           *gorm.DB
	mr           *miniredis.Miniredis
	metrics      MetricsService
	snapshots    SnapshotService
	integrations IntegrationService
	research     ResearchService
	discussions  DiscussionService
	members      MemberService
	snapshotRepo repository.SnapshotRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.NewSQLite(t)
	mr := redistest.Setup(t)

	memberRepo := repository.NewMemberRepo(db)
	researchRepo := repository.NewResearchRepo(db)
	discussionRepo := repository.NewDiscussionRepo(db)
	integrationRepo := repository.NewIntegrationRepo(db)
	usageLogRepo := repository.NewUsageLogRepo(db)
	snapshotRepo := repository.NewSnapshotRepo(db)

	metricsSvc := NewMetricsService(
		memberRepo,
		repository.NewArticleRepo(db),
		researchRepo,
		discussionRepo,
		integrationRepo,
		usageLogRepo,
		repository.NewHealthRepo(db),
	)
	return &testEnv{
		db:           db,
		mr:           mr,
		metrics:      metricsSvc,
		snapshots:    NewSnapshotService(snapshotRepo, metricsSvc),
		integrations: NewIntegrationService(integrationRepo, usageLogRepo),
		research:     NewResearchService(researchRepo),
		discussions:  NewDiscussionService(discussionRepo),
		members:      NewMemberService(memberRepo),
		snapshotRepo: snapshotRepo,
	}
}

// freezeNow 固定 nowFunc，测试结束后恢复
func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	previous := nowFunc
	nowFunc = func() time.Time {
		return at
	}
	t.Cleanup(func() {
		nowFunc = previous
	})
}

func (e *testEnv) seedMember(t *testing.T, active bool, createdAt time.Time, lastLogin *time.Time) *model.Member {
	t.Helper()
	n := seq.Add(1)
	m := &model.Member{
		Username:     fmt.Sprintf("member%d", n),
		Email:        fmt.Sprintf("member%d@example.org", n),
		PasswordHash: "x",
		Role:         consts.RoleUser,
		IsActive:     active,
		CreatedAt:    createdAt,
		LastLogin:    lastLogin,
	}
	require.NoError(t, e.db.Create(m).Error)
	return m
}

func (e *testEnv) seedArticle(t *testing.T, authorID uint64, status string, views int64) *model.Article {
	t.Helper()
	a := &model.Article{
		AuthorID: authorID,
		Title:    fmt.Sprintf("article %d", seq.Add(1)),
		Slug:     fmt.Sprintf("article-%d", seq.Add(1)),
		Content:  "body",
		Status:   status,
		Views:    views,
	}
	if status == consts.ArticleStatusPublished {
		a.PublishedAt = util.PtrTime(time.Now().UTC())
	}
	require.NoError(t, e.db.Create(a).Error)
	return a
}

func (e *testEnv) seedDiscussion(t *testing.T, discussionType, resolution string, comments int) *model.ForumPost {
	t.Helper()
	post := &model.ForumPost{AuthorID: 1, Title: fmt.Sprintf("thread %d", seq.Add(1)), Content: "body"}
	require.NoError(t, e.db.Create(post).Error)
	require.NoError(t, e.db.Create(&model.Discussion{
		ForumPostID:      post.ID,
		DiscussionType:   discussionType,
		ResolutionStatus: resolution,
	}).Error)
	for i := 0; i < comments; i++ {
		require.NoError(t, e.db.Create(&model.Comment{
			AuthorID:    1,
			ForumPostID: util.PtrUint64(post.ID),
			Content:     "reply",
		}).Error)
	}
	return post
}

func (e *testEnv) seedIntegration(t *testing.T, name, status string) *model.Integration {
	t.Helper()
	i := &model.Integration{
		Name:            name,
		IntegrationType: "api",
		Status:          status,
		CreatedByID:     1,
	}
	require.NoError(t, e.db.Create(i).Error)
	return i
}

func (e *testEnv) seedSnapshot(t *testing.T, date string, totalMembers int64) {
	t.Helper()
	require.NoError(t, e.db.Create(&model.DailySnapshot{
		MetricDate:        date,
		TotalMembers:      totalMembers,
		PublishedArticles: totalMembers / 10,
	}).Error)
}
