package job

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/pkg/mongo"
	"DigitalOrganisms/internal/pkg/redis/redistest"
	"DigitalOrganisms/internal/service"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

type fakeJobRunRepo struct {
	mu   sync.Mutex
	runs []*mongo.JobRunModel
	err  error
}

func (f *fakeJobRunRepo) CreateJobRun(_ context.Context, run *mongo.JobRunModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeJobRunRepo) ListRecentJobRuns(context.Context, string, int64) ([]*mongo.JobRunModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs, nil
}

func (f *fakeJobRunRepo) last() *mongo.JobRunModel {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.runs) == 0 {
		return nil
	}
	return f.runs[len(f.runs)-1]
}

type fakeSnapshotService struct {
	service.SnapshotService
	calls int
	err   error
}

func (f *fakeSnapshotService) RecordDailyMetrics(context.Context) (*dto.SnapshotDTO, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SnapshotDTO{ID: 1, MetricDate: "2024-01-01", TotalMembers: 3}, nil
}

type fakeIntegrationService struct {
	service.IntegrationService
	targets   []*dto.IntegrationDTO
	listErr   error
	updateErr map[uint64]error

	mu      sync.Mutex
	updates map[uint64]string
}

func (f *fakeIntegrationService) ListProbeTargets(context.Context) ([]*dto.IntegrationDTO, error) {
	return f.targets, f.listErr
}

func (f *fakeIntegrationService) UpdateIntegrationHealth(_ context.Context, id uint64, status string) error {
	if err := f.updateErr[id]; err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updates == nil {
		f.updates = make(map[uint64]string)
	}
	f.updates[id] = status
	return nil
}

type fakeProber struct {
	results map[string]string
}

func (f *fakeProber) Probe(_ context.Context, endpoint string) (string, error) {
	status, ok := f.results[endpoint]
	if !ok {
		return "error", errors.New("connection refused")
	}
	return status, nil
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	return redistest.Setup(t)
}
