package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
)

const swapCachePattern = "swaps:*"

type swapRepository interface {
	List(ctx context.Context) ([]models.SwapRequest, error)
	FindByID(ctx context.Context, id string) (*models.SwapRequest, error)
	FindForUpdateWithTx(ctx context.Context, tx *sqlx.Tx, id string) (*models.SwapRequest, error)
	Create(ctx context.Context, swap *models.SwapRequest) error
	UpdateStatusWithTx(ctx context.Context, tx *sqlx.Tx, swap *models.SwapRequest) error
	Delete(ctx context.Context, id string) error
}

type scheduleReassigner interface {
	ReassignFacultyWithTx(ctx context.Context, tx *sqlx.Tx, slot models.SlotMatch, faculty string) (bool, error)
}

// SwapService manages substitute-teacher swap requests.
//
// A request starts pending and moves exactly once, to approved or rejected.
// Approval and its timetable side effect commit or roll back together.
type SwapService struct {
	repo      swapRepository
	schedules scheduleReassigner
	tx        txProvider
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSwapService constructs a SwapService.
func NewSwapService(repo swapRepository, schedules scheduleReassigner, tx txProvider, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SwapService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SwapService{repo: repo, schedules: schedules, tx: tx, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns every swap request.
func (s *SwapService) List(ctx context.Context) ([]models.SwapRequest, error) {
	const key = "swaps:list"
	var cached []models.SwapRequest
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	swaps, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list swap requests")
	}
	s.cache.Set(ctx, key, swaps)
	return swaps, nil
}

// Create stores a new request. Any client supplied status is ignored.
func (s *SwapService) Create(ctx context.Context, req models.SwapRequestInput) (*models.SwapRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "fromFaculty, grade, day and time are required")
	}
	swap := &models.SwapRequest{
		FromFaculty: req.FromFaculty,
		ToFaculty:   req.ToFaculty,
		Grade:       req.Grade,
		Day:         req.Day,
		Time:        req.Time,
		Status:      models.SwapStatusPending,
	}
	if err := s.repo.Create(ctx, swap); err != nil {
		return nil, internalError(err, "failed to create swap request")
	}
	s.cache.Invalidate(ctx, swapCachePattern)
	return swap, nil
}

// Approve marks a pending request approved. When ToFaculty is set, the oldest
// timetable entry matching the request's grade, day, time and FromFaculty is
// handed to ToFaculty; no match leaves the timetable unchanged.
func (s *SwapService) Approve(ctx context.Context, id string) (*models.SwapRequest, error) {
	return s.transition(ctx, id, models.SwapStatusApproved)
}

// Reject marks a pending request rejected. The timetable is never touched.
func (s *SwapService) Reject(ctx context.Context, id string) (*models.SwapRequest, error) {
	return s.transition(ctx, id, models.SwapStatusRejected)
}

func (s *SwapService) transition(ctx context.Context, id string, target models.SwapStatus) (swap *models.SwapRequest, err error) {
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	start := time.Now()
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, internalError(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	swap, err = s.repo.FindForUpdateWithTx(ctx, tx, id)
	if err != nil {
		err = lookupError(err, "Swap request not found", "failed to fetch swap request")
		return nil, err
	}
	if swap.Status != models.SwapStatusPending {
		err = appErrors.Clone(appErrors.ErrConflict, "Swap request already "+string(swap.Status))
		return nil, err
	}

	swap.Status = target
	if err = s.repo.UpdateStatusWithTx(ctx, tx, swap); err != nil {
		err = internalError(err, "failed to update swap request")
		return nil, err
	}

	reassigned := false
	if target == models.SwapStatusApproved && strings.TrimSpace(swap.ToFaculty) != "" {
		reassigned, err = s.schedules.ReassignFacultyWithTx(ctx, tx, swap.Slot(), swap.ToFaculty)
		if err != nil {
			err = internalError(err, "failed to reassign schedule")
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		err = internalError(err, "failed to commit swap request")
		return nil, err
	}

	s.metrics.ObserveDBQuery("swap_"+string(target), time.Since(start))
	s.metrics.RecordSwapTransition(target)
	if target == models.SwapStatusApproved {
		s.metrics.RecordScheduleReassign(reassigned)
		s.cache.Invalidate(ctx, swapCachePattern, scheduleCachePattern)
	} else {
		s.cache.Invalidate(ctx, swapCachePattern)
	}

	s.logger.Info("swap request resolved",
		zap.String("swap_id", swap.ID),
		zap.String("status", string(target)),
		zap.Bool("schedule_reassigned", reassigned),
	)
	return swap, nil
}

// Delete removes a request regardless of status and returns it.
func (s *SwapService) Delete(ctx context.Context, id string) (*models.SwapRequest, error) {
	swap, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Swap request not found", "failed to fetch swap request")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, "Swap request not found", "failed to delete swap request")
	}
	s.cache.Invalidate(ctx, swapCachePattern)
	return swap, nil
}
