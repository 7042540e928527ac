package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/pkg/jobs"
)

const auditJobType = "audit_log"

type auditRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// AuditService records audit entries off the request path.
type AuditService struct {
	repo   auditRepository
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAuditService constructs an AuditService. Entries are written
// synchronously until Start is called.
func NewAuditService(repo auditRepository, logger *zap.Logger, cfg jobs.QueueConfig) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AuditService{repo: repo, logger: logger}
	cfg.Logger = logger
	svc.queue = jobs.NewQueue("audit", svc.handle, cfg)
	return svc
}

// Start launches the background writers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop flushes pending entries.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// Create queues log for persistence. A full or stopped queue falls back to
// an inline write.
func (s *AuditService) Create(ctx context.Context, log *models.AuditLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	entry := *log
	if err := s.queue.TryEnqueue(jobs.Job{ID: log.ID, Type: auditJobType, Payload: entry}); err == nil {
		return nil
	}
	return s.repo.Create(ctx, &entry)
}

// ListRecent returns the newest entries first.
func (s *AuditService) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	logs, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, internalError(err, "failed to list audit logs")
	}
	return logs, nil
}

func (s *AuditService) handle(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(models.AuditLog)
	if !ok {
		s.logger.Error("unexpected audit payload", zap.String("type", fmt.Sprintf("%T", job.Payload)))
		return nil
	}
	// detached so a shutdown in progress does not abort the last writes
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return s.repo.Create(writeCtx, &entry)
}
