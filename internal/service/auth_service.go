package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/pkg/database"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
)

// PasswordCost is the bcrypt cost used for stored credentials.
const PasswordCost = 8

const teacherPasswordSuffix = "1234"

type authUserRepository interface {
	FindByEmailAndRole(ctx context.Context, email string, role models.UserRole) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

type facultyNameLookup interface {
	FindByName(ctx context.Context, name string) (*models.Faculty, error)
}

// AuthConfig defines configuration for token issuance.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
}

// loginStrategy verifies one family of credentials and yields token claims.
type loginStrategy interface {
	authenticate(ctx context.Context, req models.LoginRequest) (*models.JWTClaims, error)
}

// AuthService provides signup, login and token verification.
type AuthService struct {
	users     authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time

	teacher  loginStrategy
	standard loginStrategy
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, faculty facultyNameLookup, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.Expiration <= 0 {
		config.Expiration = time.Hour
	}
	return &AuthService{
		users:     users,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       time.Now,
		teacher:   teacherLogin{faculty: faculty},
		standard:  standardLogin{users: users},
	}
}

// NormalizeEmail trims and lower-cases an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword hashes a plaintext password with PasswordCost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// TeacherPassword derives the accepted teacher password from a faculty name:
// the upper-cased first letter of the trimmed name followed by "1234".
func TeacherPassword(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return teacherPasswordSuffix
	}
	first, _ := utf8.DecodeRuneInString(trimmed)
	return string(unicode.ToUpper(first)) + teacherPasswordSuffix
}

// Signup registers a student or admin account.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "role, name, email and password are required")
	}
	if req.Role != models.RoleStudent && req.Role != models.RoleAdmin {
		return appErrors.Clone(appErrors.ErrValidation, "role must be student or admin")
	}

	email := NormalizeEmail(req.Email)
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return internalError(err, "failed to check email")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "User already exists")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return internalError(err, "failed to hash password")
	}

	user := &models.User{Role: req.Role, Name: strings.TrimSpace(req.Name), Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, "User already exists")
		}
		return internalError(err, "failed to create user")
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return nil
}

// Login dispatches on role and issues a signed token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "role, email and password are required")
	}

	var strategy loginStrategy
	switch req.Role {
	case models.RoleTeacher:
		strategy = s.teacher
	case models.RoleStudent, models.RoleAdmin:
		strategy = s.standard
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}

	claims, err := strategy.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(claims)
	if err != nil {
		return nil, internalError(err, "failed to create access token")
	}
	return &models.LoginResponse{Token: token, Role: claims.Role, Name: claims.Name}, nil
}

// ValidateToken parses and validates a token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) issueToken(claims *models.JWTClaims) (string, error) {
	issuedAt := s.now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Expiration)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
}

// teacherLogin authenticates faculty by name with the derived password.
type teacherLogin struct {
	faculty facultyNameLookup
}

func (l teacherLogin) authenticate(ctx context.Context, req models.LoginRequest) (*models.JWTClaims, error) {
	faculty, err := l.faculty.FindByName(ctx, req.Email)
	if err != nil {
		return nil, lookupError(err, "Faculty not found", "failed to fetch faculty")
	}

	expected := TeacherPassword(faculty.Name)
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(expected)) != 1 {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials")
	}
	return &models.JWTClaims{Role: models.RoleTeacher, Name: faculty.Name}, nil
}

// standardLogin authenticates stored student and admin accounts.
type standardLogin struct {
	users authUserRepository
}

func (l standardLogin) authenticate(ctx context.Context, req models.LoginRequest) (*models.JWTClaims, error) {
	user, err := l.users.FindByEmailAndRole(ctx, NormalizeEmail(req.Email), req.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials")
		}
		return nil, internalError(err, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials")
	}

	name := user.Name
	if name == "" {
		name = user.Email
	}
	return &models.JWTClaims{UserID: user.ID, Role: user.Role, Name: name}, nil
}
