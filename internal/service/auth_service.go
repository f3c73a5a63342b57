package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hamroguru/tutor-api/internal/dto"
	"github.com/hamroguru/tutor-api/internal/models"
	appErrors "github.com/hamroguru/tutor-api/pkg/errors"
)

type authStore interface {
	UpsertUser(ctx context.Context, user models.User) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	RegisterTeacher(ctx context.Context, user models.User, profile models.TeacherProfile) (*models.User, *models.TeacherProfile, error)
}

// AuthConfig defines session token parameters.
type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
	Issuer      string
}

// AuthService implements registration and login on top of whichever store
// the resolver selected.
type AuthService struct {
	store     authStore
	cache     *Cache
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService.
func NewAuthService(st authStore, cache *Cache, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{store: st, cache: cache, validator: validate, logger: logger, config: config}
}

// Register upserts a user account. Calling it twice with the same ID updates
// the first record rather than creating a duplicate.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Missing required fields")
	}

	user := models.User{
		ID:    strings.TrimSpace(req.UserID),
		Email: strings.TrimSpace(req.Email),
		Name:  strings.TrimSpace(req.Name),
		Role:  models.UserRole(req.Role),
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		user.PasswordHash = string(hash)
	}

	stored, err := s.store.UpsertUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", stored.ID), zap.String("role", string(stored.Role)))
	return stored, nil
}

// RegisterTeacher upserts the user and its teacher profile as one atomic
// write. Subjects arrive as an array and are stored as a single joined
// string; numeric fields tolerate string input.
func (s *AuthService) RegisterTeacher(ctx context.Context, req dto.RegisterTeacherRequest) (*models.User, *models.TeacherProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "UserId and email are required")
	}

	user := models.User{
		ID:    strings.TrimSpace(req.UserID),
		Email: strings.TrimSpace(req.Email),
		Name:  strings.TrimSpace(req.Name),
		Role:  models.RoleTeacher,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		user.PasswordHash = string(hash)
	}

	profile := models.TeacherProfile{
		ID:                   user.ID,
		UserID:               user.ID,
		Phone:                req.Phone,
		Age:                  int(req.Age),
		Gender:               req.Gender,
		Address:              req.Address,
		District:             req.District,
		City:                 req.City,
		HighestQualification: req.HighestQualification,
		Subjects:             models.JoinSubjects(req.Subjects),
		TeachingMode:         req.TeachingMode,
		Experience:           req.Experience,
		RateType:             req.RateType,
		RateAmount:           float64(req.RateAmount),
		Availability:         req.Availability,
		WhatsappNumber:       req.WhatsappNumber,
		WhatsappConsent:      bool(req.WhatsappConsent),
		AdditionalInfo:       req.AdditionalInfo,
		Rating:               0,
		Reviews:              0,
	}

	storedUser, storedProfile, err := s.store.RegisterTeacher(ctx, user, profile)
	if err != nil {
		return nil, nil, err
	}

	s.cache.Delete(ctx, teacherListCacheKey)
	s.logger.Info("teacher registered", zap.String("user_id", storedUser.ID))
	return storedUser, storedProfile, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Missing email or password")
	}

	user, err := s.store.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, "", err
	}

	// Accounts provisioned without a password can never log in this way.
	if user.PasswordHash == "" {
		return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue session token")
	}
	return user, token, nil
}

// ValidateToken parses a session token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.TokenSecret))
}
