package repository

import (
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/consts"
	"DigitalOrganisms/internal/pkg/util"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResearchRepo_ImpactAggregates(t *testing.T) {
	db := newTestDB(t)
	repo := NewResearchRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	author := seedMember(t, db, "scholar", true, now, nil)
	pub := seedArticle(t, db, author.ID, consts.ArticleStatusPublished, 1, util.PtrTime(now))
	draft := seedArticle(t, db, author.ID, consts.ArticleStatusDraft, 0, nil)

	require.NoError(t, db.Create(&model.ResearchArticle{ArticleID: pub.ID, ResearchType: "experiment", PeerReviewed: true, DownloadCount: 7}).Error)
	require.NoError(t, db.Create(&model.ResearchArticle{ArticleID: draft.ID, ResearchType: "theory", DownloadCount: 3}).Error)

	total, err := repo.CountResearchArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	published, err := repo.CountPublishedResearch(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), published)

	reviewed, err := repo.CountPeerReviewed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reviewed)

	downloads, err := repo.SumDownloads(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), downloads)

	byType, err := repo.CountByResearchType(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"experiment": 1, "theory": 1}, byType)
}

func TestResearchRepo_AddCitation(t *testing.T) {
	db := newTestDB(t)
	repo := NewResearchRepo(db)
	ctx := context.Background()

	author := seedMember(t, db, "scholar", true, time.Now().UTC(), nil)
	article := seedArticle(t, db, author.ID, consts.ArticleStatusPublished, 0, nil)
	research := &model.ResearchArticle{ArticleID: article.ID, ResearchType: "review"}
	require.NoError(t, db.Create(research).Error)

	affected, err := repo.AddCitation(ctx, &model.Citation{ResearchArticleID: research.ID, CitingWorkTitle: "On growth"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.GetResearchArticleByID(ctx, research.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CitationCount)
	assert.Equal(t, article.Title, got.Article.Title)

	count, err := repo.CountCitations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 研究文章不存在时不写入引用
	affected, err = repo.AddCitation(ctx, &model.Citation{ResearchArticleID: 404, CitingWorkTitle: "ghost"})
	require.NoError(t, err)
	assert.Zero(t, affected)

	count, err = repo.CountCitations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestResearchRepo_ListResearchArticles(t *testing.T) {
	db := newTestDB(t)
	repo := NewResearchRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	author := seedMember(t, db, "scholar", true, now, nil)
	for i := 0; i < 3; i++ {
		a := seedArticle(t, db, author.ID, consts.ArticleStatusPublished, int64(i), util.PtrTime(now))
		require.NoError(t, db.Create(&model.ResearchArticle{
			ArticleID:    a.ID,
			ResearchType: "analysis",
			CreatedAt:    now.Add(time.Duration(i) * time.Minute),
		}).Error)
	}
	a := seedArticle(t, db, author.ID, consts.ArticleStatusPublished, 9, util.PtrTime(now))
	require.NoError(t, db.Create(&model.ResearchArticle{ArticleID: a.ID, ResearchType: "theory"}).Error)

	list, total, err := repo.ListResearchArticles(ctx, "analysis", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
	assert.NotZero(t, list[0].Article.ID)

	all, total, err := repo.ListResearchArticles(ctx, "", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, all, 4)
}
