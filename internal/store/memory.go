package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hamroguru/tutor-api/internal/models"
	appErrors "github.com/hamroguru/tutor-api/pkg/errors"
)

// MemoryStore keeps users and teacher profiles in process-local maps. It
// exists so the rest of the system runs without a real database configured,
// e.g. for local development; nothing survives a restart. All state is owned
// by the instance, so tests get a fresh store per construction.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	profiles map[string]*models.TeacherProfile
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		profiles: make(map[string]*models.TeacherProfile),
	}
}

func (s *MemoryStore) Kind() string { return "memory" }

// Ping always succeeds: there is nothing to reach.
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) UpsertUser(ctx context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertUserLocked(user)
}

func (s *MemoryStore) upsertUserLocked(user models.User) (*models.User, error) {
	now := time.Now().UTC()

	if existing, ok := s.users[user.ID]; ok {
		existing.Name = user.Name
		existing.Role = user.Role
		if user.PasswordHash != "" {
			existing.PasswordHash = user.PasswordHash
		}
		existing.UpdatedAt = now
		cp := *existing
		return &cp, nil
	}

	// The email column carries a unique index in the relational store;
	// enforce the same invariant here.
	for _, other := range s.users {
		if strings.EqualFold(other.Email, user.Email) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
		}
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	cp := user
	s.users[user.ID] = &cp
	out := cp
	return &out, nil
}

func (s *MemoryStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if user, ok := s.users[id]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			cp := *user
			return &cp, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

func (s *MemoryStore) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	user.UpdatedAt = time.Now().UTC()

	cp := *user
	return &cp, nil
}

func (s *MemoryStore) UpsertTeacherProfile(ctx context.Context, profile models.TeacherProfile) (*models.TeacherProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertProfileLocked(profile)
}

func (s *MemoryStore) upsertProfileLocked(profile models.TeacherProfile) (*models.TeacherProfile, error) {
	now := time.Now().UTC()

	if existing, ok := s.profiles[profile.ID]; ok {
		created := existing.CreatedAt
		id, userID := existing.ID, existing.UserID
		rating, reviews := existing.Rating, existing.Reviews
		*existing = profile
		existing.ID, existing.UserID = id, userID
		existing.Rating, existing.Reviews = rating, reviews
		existing.CreatedAt = created
		existing.UpdatedAt = now
		cp := *existing
		return &cp, nil
	}

	profile.CreatedAt = now
	profile.UpdatedAt = now
	cp := profile
	s.profiles[profile.ID] = &cp
	out := cp
	return &out, nil
}

func (s *MemoryStore) FindTeacherByID(ctx context.Context, id string) (*models.TeacherListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return s.listingLocked(profile), nil
}

func (s *MemoryStore) FindTeacherByUserID(ctx context.Context, userID string) (*models.TeacherListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, profile := range s.profiles {
		if profile.UserID == userID {
			return s.listingLocked(profile), nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
}

func (s *MemoryStore) ListTeachers(ctx context.Context) ([]models.TeacherListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := make([]models.TeacherListing, 0, len(s.profiles))
	for _, profile := range s.profiles {
		listings = append(listings, *s.listingLocked(profile))
	}
	return listings, nil
}

// listingLocked joins a profile with its owning user, mirroring the
// relational store's include-user behavior. Callers hold at least a read
// lock.
func (s *MemoryStore) listingLocked(profile *models.TeacherProfile) *models.TeacherListing {
	listing := &models.TeacherListing{ID: profile.ID, Profile: *profile}
	if user, ok := s.users[profile.UserID]; ok {
		cp := *user
		listing.User = &cp
	}
	return listing
}

func (s *MemoryStore) UpdateTeacherProfile(ctx context.Context, userID string, patch models.TeacherProfilePatch) (*models.TeacherProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var profile *models.TeacherProfile
	for _, p := range s.profiles {
		if p.UserID == userID {
			profile = p
			break
		}
	}
	if profile == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher profile not found")
	}

	applyProfilePatch(profile, patch)
	profile.UpdatedAt = time.Now().UTC()

	cp := *profile
	return &cp, nil
}

func (s *MemoryStore) RegisterTeacher(ctx context.Context, user models.User, profile models.TeacherProfile) (*models.User, *models.TeacherProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Both writes happen under one lock acquisition; a conflict on the user
	// aborts before the profile is touched, so no orphan can appear.
	storedUser, err := s.upsertUserLocked(user)
	if err != nil {
		return nil, nil, err
	}
	storedProfile, err := s.upsertProfileLocked(profile)
	if err != nil {
		return nil, nil, err
	}
	return storedUser, storedProfile, nil
}

func (s *MemoryStore) DeleteTeacher(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		if _, userOK := s.users[id]; !userOK {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
	}

	delete(s.profiles, id)
	delete(s.users, id)
	return nil
}

func applyProfilePatch(profile *models.TeacherProfile, patch models.TeacherProfilePatch) {
	if patch.Phone != nil {
		profile.Phone = *patch.Phone
	}
	if patch.Age != nil {
		profile.Age = *patch.Age
	}
	if patch.Gender != nil {
		profile.Gender = *patch.Gender
	}
	if patch.Address != nil {
		profile.Address = *patch.Address
	}
	if patch.District != nil {
		profile.District = *patch.District
	}
	if patch.City != nil {
		profile.City = *patch.City
	}
	if patch.HighestQualification != nil {
		profile.HighestQualification = *patch.HighestQualification
	}
	if patch.Subjects != nil {
		profile.Subjects = *patch.Subjects
	}
	if patch.TeachingMode != nil {
		profile.TeachingMode = *patch.TeachingMode
	}
	if patch.Experience != nil {
		profile.Experience = *patch.Experience
	}
	if patch.RateType != nil {
		profile.RateType = *patch.RateType
	}
	if patch.RateAmount != nil {
		profile.RateAmount = *patch.RateAmount
	}
	if patch.Availability != nil {
		profile.Availability = *patch.Availability
	}
	if patch.WhatsappNumber != nil {
		profile.WhatsappNumber = *patch.WhatsappNumber
	}
	if patch.WhatsappConsent != nil {
		profile.WhatsappConsent = *patch.WhatsappConsent
	}
	if patch.AdditionalInfo != nil {
		profile.AdditionalInfo = *patch.AdditionalInfo
	}
}
