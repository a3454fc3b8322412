package repository

import (
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/database"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepo_UniquePerDate(t *testing.T) {
	repo := NewSnapshotRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateSnapshot(ctx, &model.DailySnapshot{MetricDate: "2026-03-01", TotalMembers: 10}))

	err := repo.CreateSnapshot(ctx, &model.DailySnapshot{MetricDate: "2026-03-01", TotalMembers: 11})
	require.Error(t, err)
	assert.True(t, database.IsDuplicateKey(err))

	got, err := repo.GetSnapshotByDate(ctx, "2026-03-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(10), got.TotalMembers)

	missing, err := repo.GetSnapshotByDate(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSnapshotRepo_ListSinceAscending(t *testing.T) {
	repo := NewSnapshotRepo(newTestDB(t))
	ctx := context.Background()

	for _, date := range []string{"2026-03-05", "2026-02-01", "2026-03-01", "2026-03-03"} {
		require.NoError(t, repo.CreateSnapshot(ctx, &model.DailySnapshot{MetricDate: date}))
	}

	list, err := repo.ListSnapshotsSince(ctx, "2026-03-01")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2026-03-01", list[0].MetricDate)
	assert.Equal(t, "2026-03-03", list[1].MetricDate)
	assert.Equal(t, "2026-03-05", list[2].MetricDate)
}
