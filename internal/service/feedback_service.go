package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

const feedbackCachePattern = "feedback:*"

type feedbackRepository interface {
	List(ctx context.Context) ([]models.Feedback, error)
	FindByID(ctx context.Context, id string) (*models.Feedback, error)
	Create(ctx context.Context, fb *models.Feedback) error
	Update(ctx context.Context, fb *models.Feedback) error
	Delete(ctx context.Context, id string) error
}

// FeedbackService implements the feedback collection.
type FeedbackService struct {
	repo      feedbackRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(repo feedbackRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all feedback.
func (s *FeedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	const key = "feedback:list"
	var cached []models.Feedback
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list feedback")
	}
	s.cache.Set(ctx, key, items)
	return items, nil
}

// Create stores feedback. The timestamp is kept exactly as sent.
func (s *FeedbackService) Create(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "message is required")
	}
	fb := &models.Feedback{Student: req.Student, Grade: req.Grade, Message: req.Message, Timestamp: req.Timestamp}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, internalError(err, "failed to create feedback")
	}
	s.cache.Invalidate(ctx, feedbackCachePattern)
	return fb, nil
}

// Update replaces the supplied fields of a feedback entry.
func (s *FeedbackService) Update(ctx context.Context, id string, req models.UpdateFeedbackRequest) (*models.Feedback, error) {
	fb, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Feedback not found", "failed to fetch feedback")
	}
	fb.Student = stringOr(req.Student, fb.Student)
	fb.Grade = stringOr(req.Grade, fb.Grade)
	fb.Message = stringOr(req.Message, fb.Message)
	fb.Timestamp = stringOr(req.Timestamp, fb.Timestamp)
	if err := s.repo.Update(ctx, fb); err != nil {
		return nil, lookupError(err, "Feedback not found", "failed to update feedback")
	}
	s.cache.Invalidate(ctx, feedbackCachePattern)
	return fb, nil
}

// Delete removes a feedback entry and returns it.
func (s *FeedbackService) Delete(ctx context.Context, id string) (*models.Feedback, error) {
	fb, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Feedback not found", "failed to fetch feedback")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, "Feedback not found", "failed to delete feedback")
	}
	s.cache.Invalidate(ctx, feedbackCachePattern)
	return fb, nil
}
