package handler

import (
	"context"
	"sync"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/service"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
)

// crudStub serves any of the uniform collection services.
type crudStub[T any, C any, U any] struct {
	items     []T
	item      T
	err       error
	lastID    string
	lastInput interface{}
}

func (s *crudStub[T, C, U]) List(ctx context.Context) ([]T, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.items == nil {
		return []T{}, nil
	}
	return s.items, nil
}

func (s *crudStub[T, C, U]) Create(ctx context.Context, req C) (*T, error) {
	s.lastInput = req
	if s.err != nil {
		return nil, s.err
	}
	out := s.item
	return &out, nil
}

func (s *crudStub[T, C, U]) Update(ctx context.Context, id string, req U) (*T, error) {
	s.lastID = id
	s.lastInput = req
	if s.err != nil {
		return nil, s.err
	}
	out := s.item
	return &out, nil
}

func (s *crudStub[T, C, U]) Delete(ctx context.Context, id string) (*T, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	out := s.item
	return &out, nil
}

type authServiceMock struct {
	signups   int
	signupErr error
	login     *models.LoginResponse
	loginErr  error
}

func (m *authServiceMock) Signup(ctx context.Context, req models.SignupRequest) error {
	if m.signupErr != nil {
		return m.signupErr
	}
	m.signups++
	return nil
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return m.login, m.loginErr
}

type scheduleServiceMock struct {
	filter     models.ScheduleFilter
	replaced   models.ReplaceSchedulesRequest
	schedules  []models.Schedule
	cleared    bool
	export     *service.ScheduleExport
	exportArgs [2]string
	err        error
}

func (m *scheduleServiceMock) List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	m.filter = filter
	return m.schedules, m.err
}

func (m *scheduleServiceMock) Replace(ctx context.Context, req models.ReplaceSchedulesRequest) ([]models.Schedule, error) {
	m.replaced = req
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Schedule, 0, len(req.Schedules))
	for i, entry := range req.Schedules {
		out = append(out, models.Schedule{
			ID:      string(rune('a' + i)),
			Grade:   req.Grade,
			Subject: entry.Subject,
			Faculty: entry.Faculty,
			Day:     entry.Day,
			Time:    entry.Time,
		})
	}
	return out, nil
}

func (m *scheduleServiceMock) Update(ctx context.Context, id string, req models.UpdateScheduleRequest) (*models.Schedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Schedule{ID: id}, nil
}

func (m *scheduleServiceMock) Delete(ctx context.Context, id string) (*models.Schedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Schedule{ID: id}, nil
}

func (m *scheduleServiceMock) DeleteAll(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.cleared = true
	return int64(len(m.schedules)), nil
}

func (m *scheduleServiceMock) Export(ctx context.Context, format, grade string) (*service.ScheduleExport, error) {
	m.exportArgs = [2]string{format, grade}
	return m.export, m.err
}

type swapServiceMock struct {
	swap      *models.SwapRequest
	err       error
	approvals int
}

func (m *swapServiceMock) List(ctx context.Context) ([]models.SwapRequest, error) {
	return []models.SwapRequest{}, m.err
}

func (m *swapServiceMock) Create(ctx context.Context, req models.SwapRequestInput) (*models.SwapRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.SwapRequest{ID: "swap-1", FromFaculty: req.FromFaculty, ToFaculty: req.ToFaculty, Status: models.SwapStatusPending}, nil
}

func (m *swapServiceMock) Approve(ctx context.Context, id string) (*models.SwapRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.approvals++
	out := *m.swap
	out.Status = models.SwapStatusApproved
	return &out, nil
}

func (m *swapServiceMock) Reject(ctx context.Context, id string) (*models.SwapRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := *m.swap
	out.Status = models.SwapStatusRejected
	return &out, nil
}

func (m *swapServiceMock) Delete(ctx context.Context, id string) (*models.SwapRequest, error) {
	return m.swap, m.err
}

type tokenValidatorStub map[string]*models.JWTClaims

func (s tokenValidatorStub) ValidateToken(token string) (*models.JWTClaims, error) {
	claims, ok := s[token]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "Invalid or expired token")
	}
	return claims, nil
}

type auditRecorder struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (r *auditRecorder) Create(ctx context.Context, log *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *log)
	return nil
}

func (r *auditRecorder) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditLog, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

type pingerStub struct{ err error }

func (p pingerStub) PingContext(ctx context.Context) error { return p.err }
