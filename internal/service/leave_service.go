package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

const leaveCachePattern = "leaves:*"

type leaveRepository interface {
	List(ctx context.Context) ([]models.Leave, error)
	FindByID(ctx context.Context, id string) (*models.Leave, error)
	Create(ctx context.Context, leave *models.Leave) error
	Update(ctx context.Context, leave *models.Leave) error
	Delete(ctx context.Context, id string) error
}

// LeaveService implements the leave collection. Status has no state machine:
// it starts pending and the generic update may set any value.
type LeaveService struct {
	repo      leaveRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLeaveService constructs a LeaveService.
func NewLeaveService(repo leaveRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *LeaveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every leave request.
func (s *LeaveService) List(ctx context.Context) ([]models.Leave, error) {
	const key = "leaves:list"
	var cached []models.Leave
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	leaves, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list leaves")
	}
	s.cache.Set(ctx, key, leaves)
	return leaves, nil
}

// Create stores a new leave request, pending unless a status is supplied.
func (s *LeaveService) Create(ctx context.Context, req models.LeaveRequest) (*models.Leave, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "faculty, from and to are required")
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.LeaveStatusPending
	}
	leave := &models.Leave{Faculty: req.Faculty, From: req.From, To: req.To, Reason: req.Reason, Status: status}
	if err := s.repo.Create(ctx, leave); err != nil {
		return nil, internalError(err, "failed to create leave")
	}
	s.cache.Invalidate(ctx, leaveCachePattern)
	return leave, nil
}

// Update replaces the supplied fields of a leave request.
func (s *LeaveService) Update(ctx context.Context, id string, req models.UpdateLeaveRequest) (*models.Leave, error) {
	leave, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Leave not found", "failed to fetch leave")
	}
	leave.Faculty = stringOr(req.Faculty, leave.Faculty)
	leave.From = stringOr(req.From, leave.From)
	leave.To = stringOr(req.To, leave.To)
	leave.Reason = stringOr(req.Reason, leave.Reason)
	leave.Status = stringOr(req.Status, leave.Status)
	if err := s.repo.Update(ctx, leave); err != nil {
		return nil, lookupError(err, "Leave not found", "failed to update leave")
	}
	s.cache.Invalidate(ctx, leaveCachePattern)
	s.logger.Info("leave updated", zap.String("leave_id", leave.ID), zap.String("status", leave.Status))
	return leave, nil
}

// Delete removes a leave request and returns it.
func (s *LeaveService) Delete(ctx context.Context, id string) (*models.Leave, error) {
	leave, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Leave not found", "failed to fetch leave")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, "Leave not found", "failed to delete leave")
	}
	s.cache.Invalidate(ctx, leaveCachePattern)
	return leave, nil
}
