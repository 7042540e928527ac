package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

type roomRepository interface {
	Kind() models.RoomKind
	List(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
}

// RoomService implements the classroom and lab collections; one instance per kind.
type RoomService struct {
	repo      roomRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService constructs a RoomService for the kind served by repo.
func NewRoomService(repo roomRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func (s *RoomService) notFound() string {
	label := s.repo.Kind().Label()
	return strings.ToUpper(label[:1]) + label[1:] + " not found"
}

func (s *RoomService) cachePattern() string {
	return string(s.repo.Kind()) + ":*"
}

// List returns every room of the service's kind.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	key := string(s.repo.Kind()) + ":list"
	var cached []models.Room
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list "+string(s.repo.Kind()))
	}
	s.cache.Set(ctx, key, rooms)
	return rooms, nil
}

// Create stores a new room.
func (s *RoomService) Create(ctx context.Context, req models.RoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "name is required")
	}
	room := &models.Room{Name: req.Name}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, internalError(err, "failed to create "+s.repo.Kind().Label())
	}
	s.cache.Invalidate(ctx, s.cachePattern())
	return room, nil
}

// Update replaces the supplied fields of a room.
func (s *RoomService) Update(ctx context.Context, id string, req models.UpdateRoomRequest) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, s.notFound(), "failed to fetch "+s.repo.Kind().Label())
	}
	if req.Name != nil {
		room.Name = *req.Name
	}
	if err := s.repo.Update(ctx, room); err != nil {
		return nil, lookupError(err, s.notFound(), "failed to update "+s.repo.Kind().Label())
	}
	s.cache.Invalidate(ctx, s.cachePattern())
	return room, nil
}

// Delete removes a room and returns it.
func (s *RoomService) Delete(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, s.notFound(), "failed to fetch "+s.repo.Kind().Label())
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, s.notFound(), "failed to delete "+s.repo.Kind().Label())
	}
	s.cache.Invalidate(ctx, s.cachePattern())
	return room, nil
}
