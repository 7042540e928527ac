package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

const facultyCachePattern = "faculty:*"

type facultyRepository interface {
	List(ctx context.Context) ([]models.Faculty, error)
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
	Create(ctx context.Context, f *models.Faculty) error
	Update(ctx context.Context, f *models.Faculty) error
	Delete(ctx context.Context, id string) error
}

// FacultyService implements the faculty collection.
type FacultyService struct {
	repo      facultyRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService constructs a FacultyService.
func NewFacultyService(repo facultyRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every faculty member.
func (s *FacultyService) List(ctx context.Context) ([]models.Faculty, error) {
	const key = "faculty:list"
	var cached []models.Faculty
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	faculty, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list faculty")
	}
	s.cache.Set(ctx, key, faculty)
	return faculty, nil
}

// Create stores a new faculty member.
func (s *FacultyService) Create(ctx context.Context, req models.FacultyRequest) (*models.Faculty, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "name is required")
	}
	f := &models.Faculty{Name: req.Name}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, internalError(err, "failed to create faculty")
	}
	s.cache.Invalidate(ctx, facultyCachePattern)
	return f, nil
}

// Update replaces the supplied fields of a faculty member.
func (s *FacultyService) Update(ctx context.Context, id string, req models.UpdateFacultyRequest) (*models.Faculty, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Faculty not found", "failed to fetch faculty")
	}
	if req.Name != nil {
		f.Name = *req.Name
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, lookupError(err, "Faculty not found", "failed to update faculty")
	}
	s.cache.Invalidate(ctx, facultyCachePattern)
	return f, nil
}

// Delete removes a faculty member and returns it.
func (s *FacultyService) Delete(ctx context.Context, id string) (*models.Faculty, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Faculty not found", "failed to fetch faculty")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, "Faculty not found", "failed to delete faculty")
	}
	s.cache.Invalidate(ctx, facultyCachePattern)
	return f, nil
}
