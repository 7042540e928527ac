package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

const gradeCachePattern = "grades:*"

type gradeRepository interface {
	List(ctx context.Context) ([]models.Grade, error)
	FindByID(ctx context.Context, id string) (*models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id string) error
}

// GradeService implements the grade collection. Capacity is stored but never enforced.
type GradeService struct {
	repo      gradeRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs a GradeService.
func NewGradeService(repo gradeRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every grade.
func (s *GradeService) List(ctx context.Context) ([]models.Grade, error) {
	const key = "grades:list"
	var cached []models.Grade
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	grades, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list grades")
	}
	s.cache.Set(ctx, key, grades)
	return grades, nil
}

// Create stores a new grade.
func (s *GradeService) Create(ctx context.Context, req models.GradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "year, branch and section are required")
	}
	grade := &models.Grade{
		Year:     req.Year,
		Branch:   req.Branch,
		Section:  req.Section,
		Shift:    req.Shift,
		Capacity: req.Capacity,
	}
	if err := s.repo.Create(ctx, grade); err != nil {
		return nil, internalError(err, "failed to create grade")
	}
	s.cache.Invalidate(ctx, gradeCachePattern)
	return grade, nil
}

// Update replaces the supplied fields of a grade.
func (s *GradeService) Update(ctx context.Context, id string, req models.UpdateGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "capacity must not be negative")
	}
	grade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Grade not found", "failed to fetch grade")
	}
	grade.Year = stringOr(req.Year, grade.Year)
	grade.Branch = stringOr(req.Branch, grade.Branch)
	grade.Section = stringOr(req.Section, grade.Section)
	grade.Shift = stringOr(req.Shift, grade.Shift)
	if req.Capacity != nil {
		grade.Capacity = *req.Capacity
	}
	if err := s.repo.Update(ctx, grade); err != nil {
		return nil, lookupError(err, "Grade not found", "failed to update grade")
	}
	s.cache.Invalidate(ctx, gradeCachePattern)
	return grade, nil
}

// Delete removes a grade and returns it. Schedules referencing it are left alone.
func (s *GradeService) Delete(ctx context.Context, id string) (*models.Grade, error) {
	grade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Grade not found", "failed to fetch grade")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, "Grade not found", "failed to delete grade")
	}
	s.cache.Invalidate(ctx, gradeCachePattern)
	return grade, nil
}
