package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

const subjectCachePattern = "subjects:*"

type subjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
}

// SubjectService implements the subject collection. Faculty names are not checked.
type SubjectService struct {
	repo      subjectRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(repo subjectRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every subject.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	const key = "subjects:list"
	var cached []models.Subject
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list subjects")
	}
	s.cache.Set(ctx, key, subjects)
	return subjects, nil
}

// Create stores a new subject.
func (s *SubjectService) Create(ctx context.Context, req models.SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "grade and subject are required")
	}
	subject := &models.Subject{Grade: req.Grade, Subject: req.Subject, Type: req.Type, Faculty: req.Faculty}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, internalError(err, "failed to create subject")
	}
	s.cache.Invalidate(ctx, subjectCachePattern)
	return subject, nil
}

// Update replaces the supplied fields of a subject.
func (s *SubjectService) Update(ctx context.Context, id string, req models.UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Subject not found", "failed to fetch subject")
	}
	subject.Grade = stringOr(req.Grade, subject.Grade)
	subject.Subject = stringOr(req.Subject, subject.Subject)
	subject.Type = stringOr(req.Type, subject.Type)
	subject.Faculty = stringOr(req.Faculty, subject.Faculty)
	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, lookupError(err, "Subject not found", "failed to update subject")
	}
	s.cache.Invalidate(ctx, subjectCachePattern)
	return subject, nil
}

// Delete removes a subject and returns it.
func (s *SubjectService) Delete(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Subject not found", "failed to fetch subject")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, "Subject not found", "failed to delete subject")
	}
	s.cache.Invalidate(ctx, subjectCachePattern)
	return subject, nil
}
