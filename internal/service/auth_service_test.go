package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
)

type mockAuthRepo struct {
	users     map[string]*models.User
	createErr error
	findErr   error
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{users: map[string]*models.User{}}
}

func (m *mockAuthRepo) FindByEmailAndRole(ctx context.Context, email string, role models.UserRole) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	user, ok := m.users[email]
	if !ok || user.Role != role {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockAuthRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "user-" + user.Email
	m.users[user.Email] = user
	return nil
}

type mockFacultyLookup struct {
	faculty []models.Faculty
	err     error
}

func (m *mockFacultyLookup) FindByName(ctx context.Context, name string) (*models.Faculty, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.faculty {
		if equalFoldTrim(m.faculty[i].Name, name) {
			return &m.faculty[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func equalFoldTrim(a, b string) bool {
	return NormalizeEmail(a) == NormalizeEmail(b)
}

func newAuthService(repo *mockAuthRepo, faculty *mockFacultyLookup) *AuthService {
	return NewAuthService(repo, faculty, nil, nil, AuthConfig{Secret: "test-secret", Expiration: time.Hour})
}

func TestSignupThenLoginSucceeds(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newAuthService(repo, &mockFacultyLookup{})

	err := svc.Signup(context.Background(), models.SignupRequest{Role: models.RoleStudent, Name: "Sam", Email: "Sam@Example.com", Password: "secret"})
	require.NoError(t, err)

	stored := repo.users["sam@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Role: models.RoleStudent, Email: "SAM@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resp.Role)
	assert.Equal(t, "Sam", resp.Name)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-sam@example.com", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestSignupRejectsCaseInsensitiveDuplicate(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newAuthService(repo, &mockFacultyLookup{})

	require.NoError(t, svc.Signup(context.Background(), models.SignupRequest{Role: models.RoleAdmin, Name: "Ada", Email: "ada@example.com", Password: "pw"}))
	err := svc.Signup(context.Background(), models.SignupRequest{Role: models.RoleStudent, Name: "Ada 2", Email: "ADA@example.com", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrConflict))
}

func TestSignupMapsUniqueViolationToConflict(t *testing.T) {
	repo := newMockAuthRepo()
	repo.createErr = &pq.Error{Code: "23505"}
	svc := newAuthService(repo, &mockFacultyLookup{})

	err := svc.Signup(context.Background(), models.SignupRequest{Role: models.RoleStudent, Name: "Sam", Email: "sam@example.com", Password: "pw"})
	assert.True(t, errors.Is(err, appErrors.ErrConflict))
}

func TestSignupValidation(t *testing.T) {
	svc := newAuthService(newMockAuthRepo(), &mockFacultyLookup{})

	err := svc.Signup(context.Background(), models.SignupRequest{Role: models.RoleStudent, Email: "a@b.c", Password: "pw"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	err = svc.Signup(context.Background(), models.SignupRequest{Role: models.RoleTeacher, Name: "T", Email: "t@b.c", Password: "pw"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestTeacherPassword(t *testing.T) {
	cases := map[string]string{
		"alice":       "A1234",
		"  bob smith": "B1234",
		"Élodie":      "É1234",
		"":            "1234",
	}
	for name, want := range cases {
		assert.Equal(t, want, TeacherPassword(name), name)
	}
}

func TestTeacherLogin(t *testing.T) {
	faculty := &mockFacultyLookup{faculty: []models.Faculty{{ID: "f1", Name: "Alice Smith"}}}
	svc := newAuthService(newMockAuthRepo(), faculty)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Role: models.RoleTeacher, Email: "alice smith", Password: "A1234"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, resp.Role)
	assert.Equal(t, "Alice Smith", resp.Name)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Empty(t, claims.UserID)
	assert.Equal(t, "Alice Smith", claims.Name)

	_, err = svc.Login(context.Background(), models.LoginRequest{Role: models.RoleTeacher, Email: "Alice Smith", Password: "a1234"})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))

	_, err = svc.Login(context.Background(), models.LoginRequest{Role: models.RoleTeacher, Email: "Nobody", Password: "N1234"})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestStandardLoginFailures(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newAuthService(repo, &mockFacultyLookup{})
	require.NoError(t, svc.Signup(context.Background(), models.SignupRequest{Role: models.RoleAdmin, Name: "Root", Email: "root@example.com", Password: "pw"}))

	_, err := svc.Login(context.Background(), models.LoginRequest{Role: models.RoleAdmin, Email: "root@example.com", Password: "wrong"})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))

	_, err = svc.Login(context.Background(), models.LoginRequest{Role: models.RoleStudent, Email: "root@example.com", Password: "pw"})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))

	_, err = svc.Login(context.Background(), models.LoginRequest{Role: "guest", Email: "root@example.com", Password: "pw"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	repo.findErr = errors.New("connection reset")
	_, err = svc.Login(context.Background(), models.LoginRequest{Role: models.RoleAdmin, Email: "root@example.com", Password: "pw"})
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}

func TestStandardLoginFallsBackToEmailForName(t *testing.T) {
	repo := newMockAuthRepo()
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	repo.users["anon@example.com"] = &models.User{ID: "u1", Role: models.RoleStudent, Email: "anon@example.com", PasswordHash: hash}
	svc := newAuthService(repo, &mockFacultyLookup{})

	resp, err := svc.Login(context.Background(), models.LoginRequest{Role: models.RoleStudent, Email: "anon@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "anon@example.com", resp.Name)
}

func TestValidateTokenRejectsExpiredAndForeign(t *testing.T) {
	svc := newAuthService(newMockAuthRepo(), &mockFacultyLookup{faculty: []models.Faculty{{Name: "Bob"}}})
	svc.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }

	resp, err := svc.Login(context.Background(), models.LoginRequest{Role: models.RoleTeacher, Email: "bob", Password: "B1234"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(resp.Token)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{Role: models.RoleAdmin}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}
