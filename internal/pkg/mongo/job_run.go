package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	JobRunStatusSuccess = "success"
	JobRunStatusFailed  = "failed"
	JobRunStatusSkipped = "skipped"
)

// JobRunModel 定时任务单次执行记录
type JobRunModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Job        string             `bson:"job" json:"job"`
	TraceID    string             `bson:"trace_id" json:"trace_id"`
	Status     string             `bson:"status" json:"status"`                   // success, failed, skipped
	Error      string             `bson:"error,omitempty" json:"error,omitempty"` // 失败原因
	Detail     map[string]any     `bson:"detail,omitempty" json:"detail,omitempty"`
	StartedAt  time.Time          `bson:"started_at" json:"started_at"`
	FinishedAt time.Time          `bson:"finished_at" json:"finished_at"`
	DurationMs int64              `bson:"duration_ms" json:"duration_ms"`
}
