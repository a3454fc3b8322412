package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const jobRunCollection = "job_runs"

type JobRunRepo interface {
	CreateJobRun(ctx context.Context, run *JobRunModel) error
	ListRecentJobRuns(ctx context.Context, job string, limit int64) ([]*JobRunModel, error)
}

type jobRunRepoImpl struct {
	col *mongo.Collection
}

func NewJobRunRepo(db *mongo.Database) JobRunRepo {
	return &jobRunRepoImpl{
		col: db.Collection(jobRunCollection),
	}
}

// EnsureJobRunIndexes 按任务名与开始时间倒序查询
func EnsureJobRunIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(jobRunCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "job", Value: 1}, {Key: "started_at", Value: -1}},
	})
	return err
}

func (s *jobRunRepoImpl) CreateJobRun(ctx context.Context, run *JobRunModel) error {
	_, err := s.col.InsertOne(ctx, run)
	return err
}

// ListRecentJobRuns 按开始时间倒序，job 为空时返回全部任务
func (s *jobRunRepoImpl) ListRecentJobRuns(ctx context.Context, job string, limit int64) ([]*JobRunModel, error) {
	filter := bson.M{}
	if job != "" {
		filter["job"] = job
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*JobRunModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
