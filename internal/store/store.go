// Package store defines the data-access contract shared by the in-memory
// and Postgres implementations, plus the startup resolver that picks one.
package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/hamroguru/tutor-api/internal/models"
	"github.com/hamroguru/tutor-api/pkg/config"
	"github.com/hamroguru/tutor-api/pkg/database"
)

// Store is the uniform contract over the backing stores. Every
// implementation provides the same semantics: upserts are keyed by primary
// ID, teacher reads come back joined with the owning user, updates against a
// missing key fail with a not-found error, and RegisterTeacher/DeleteTeacher
// apply their two writes atomically.
type Store interface {
	// UpsertUser inserts the user or, when the ID already exists, updates
	// name and role. It returns the record as stored.
	UpsertUser(ctx context.Context, user models.User) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUser merges the patch into an existing record, refreshing
	// updatedAt. Missing key yields a not-found error.
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)

	UpsertTeacherProfile(ctx context.Context, profile models.TeacherProfile) (*models.TeacherProfile, error)
	FindTeacherByID(ctx context.Context, id string) (*models.TeacherListing, error)
	FindTeacherByUserID(ctx context.Context, userID string) (*models.TeacherListing, error)
	ListTeachers(ctx context.Context) ([]models.TeacherListing, error)
	UpdateTeacherProfile(ctx context.Context, userID string, patch models.TeacherProfilePatch) (*models.TeacherProfile, error)

	// RegisterTeacher upserts the user and its profile as one atomic unit:
	// either both land or neither does.
	RegisterTeacher(ctx context.Context, user models.User, profile models.TeacherProfile) (*models.User, *models.TeacherProfile, error)
	// DeleteTeacher removes the profile and its user in one transaction.
	DeleteTeacher(ctx context.Context, id string) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
	// Kind names the active implementation for logs and health output.
	Kind() string
}

// Open selects the backing store exactly once at process start: a configured
// DATABASE_URL activates Postgres, otherwise the volatile in-memory store.
// No network I/O happens here; a broken database surfaces on first use.
func Open(cfg *config.Config, logger *zap.Logger) (Store, error) {
	if cfg.Database.URL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory store; data will not survive a restart")
		return NewMemory(), nil
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, err
	}

	logger.Info("using postgres store")
	return NewPostgres(db), nil
}
