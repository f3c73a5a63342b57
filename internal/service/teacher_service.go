package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hamroguru/tutor-api/internal/dto"
	"github.com/hamroguru/tutor-api/internal/models"
	appErrors "github.com/hamroguru/tutor-api/pkg/errors"
	"github.com/hamroguru/tutor-api/pkg/export"
)

const teacherListCacheKey = "teachers:list"

type directoryStore interface {
	FindTeacherByID(ctx context.Context, id string) (*models.TeacherListing, error)
	FindTeacherByUserID(ctx context.Context, userID string) (*models.TeacherListing, error)
	ListTeachers(ctx context.Context) ([]models.TeacherListing, error)
	UpdateTeacherProfile(ctx context.Context, userID string, patch models.TeacherProfilePatch) (*models.TeacherProfile, error)
	DeleteTeacher(ctx context.Context, id string) error
}

// TeacherService serves the teacher directory: listing, detail, profile
// edits and admin removal.
type TeacherService struct {
	store     directoryStore
	cache     *Cache
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(st directoryStore, cache *Cache, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{store: st, cache: cache, validator: validate, logger: logger}
}

// List returns every teacher profile joined with its user, read through the
// cache when one is configured.
func (s *TeacherService) List(ctx context.Context) ([]models.TeacherListing, error) {
	var cached []models.TeacherListing
	if s.cache.Get(ctx, teacherListCacheKey, &cached) {
		return cached, nil
	}

	listings, err := s.store.ListTeachers(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, teacherListCacheKey, listings)
	return listings, nil
}

// Get returns one teacher by profile ID.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.TeacherListing, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing teacher id")
	}
	return s.store.FindTeacherByID(ctx, id)
}

// GetProfile returns the profile owned by userID.
func (s *TeacherService) GetProfile(ctx context.Context, userID string) (*models.TeacherListing, error) {
	if userID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "User ID is required")
	}
	return s.store.FindTeacherByUserID(ctx, userID)
}

// UpdateProfile applies a partial edit to the caller's own profile. The
// profile keys never change; subjects are re-joined when sent as an array.
func (s *TeacherService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*models.TeacherProfile, error) {
	if userID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "User ID is required")
	}

	patch := models.TeacherProfilePatch{
		Phone:                req.Phone,
		Gender:               req.Gender,
		Address:              req.Address,
		District:             req.District,
		City:                 req.City,
		HighestQualification: req.HighestQualification,
		TeachingMode:         req.TeachingMode,
		Experience:           req.Experience,
		RateType:             req.RateType,
		Availability:         req.Availability,
		WhatsappNumber:       req.WhatsappNumber,
		AdditionalInfo:       req.AdditionalInfo,
	}
	if req.Age != nil {
		age := int(*req.Age)
		patch.Age = &age
	}
	if req.RateAmount != nil {
		rate := float64(*req.RateAmount)
		patch.RateAmount = &rate
	}
	if req.WhatsappConsent != nil {
		consent := bool(*req.WhatsappConsent)
		patch.WhatsappConsent = &consent
	}
	if req.Subjects != nil {
		joined := models.JoinSubjects(*req.Subjects)
		patch.Subjects = &joined
	}

	profile, err := s.store.UpdateTeacherProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, teacherListCacheKey)
	return profile, nil
}

// Delete removes a teacher account and its profile.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Missing id")
	}
	if err := s.store.DeleteTeacher(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, teacherListCacheKey)
	s.logger.Info("teacher deleted", zap.String("id", id))
	return nil
}

// ExportDataset flattens the directory into tabular form for the admin
// CSV/PDF export.
func (s *TeacherService) ExportDataset(ctx context.Context) (export.Dataset, error) {
	listings, err := s.List(ctx)
	if err != nil {
		return export.Dataset{}, err
	}

	ds := export.Dataset{
		Headers: []string{"ID", "Name", "Email", "Phone", "City", "Subjects", "Mode", "Rate", "Rating", "Reviews"},
	}
	for _, listing := range listings {
		name, email := "", ""
		if listing.User != nil {
			name, email = listing.User.Name, listing.User.Email
		}
		ds.Rows = append(ds.Rows, []string{
			listing.ID,
			name,
			email,
			listing.Profile.Phone,
			listing.Profile.City,
			listing.Profile.Subjects,
			listing.Profile.TeachingMode,
			fmt.Sprintf("%s %s", listing.Profile.RateType, strconv.FormatFloat(listing.Profile.RateAmount, 'f', -1, 64)),
			strconv.FormatFloat(listing.Profile.Rating, 'f', 1, 64),
			strconv.Itoa(listing.Profile.Reviews),
		})
	}
	return ds, nil
}
