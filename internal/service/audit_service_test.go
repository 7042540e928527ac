package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
	"github.com/noah-isme/class-scheduler-api/pkg/jobs"
)

type memoryAuditRepo struct {
	mu      sync.Mutex
	entries []models.AuditLog
	listErr error
}

func (m *memoryAuditRepo) Create(ctx context.Context, log *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *log)
	return nil
}

func (m *memoryAuditRepo) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}

func (m *memoryAuditRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func TestAuditServiceWritesInlineBeforeStart(t *testing.T) {
	repo := &memoryAuditRepo{}
	svc := NewAuditService(repo, nil, jobs.QueueConfig{})

	require.NoError(t, svc.Create(context.Background(), &models.AuditLog{Action: models.AuditActionScheduleClear}))
	assert.Equal(t, 1, repo.count())
	assert.False(t, repo.entries[0].CreatedAt.IsZero())
}

func TestAuditServiceQueuesAndFlushesOnStop(t *testing.T) {
	repo := &memoryAuditRepo{}
	svc := NewAuditService(repo, nil, jobs.QueueConfig{Workers: 2, BufferSize: 32, DrainTimeout: time.Second})
	svc.Start(context.Background())

	for i := 0; i < 20; i++ {
		require.NoError(t, svc.Create(context.Background(), &models.AuditLog{Action: models.AuditActionSwapApprove}))
	}
	svc.Stop()

	assert.Equal(t, 20, repo.count())
}

func TestAuditServiceListFailureIsInternal(t *testing.T) {
	svc := NewAuditService(&memoryAuditRepo{listErr: errors.New("boom")}, nil, jobs.QueueConfig{})

	_, err := svc.ListRecent(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}
