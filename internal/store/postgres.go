package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hamroguru/tutor-api/internal/models"
	appErrors "github.com/hamroguru/tutor-api/pkg/errors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// PostgresStore backs the Store contract with two related tables, users and
// teacher_profiles (one-to-one on the shared primary key). Multi-entity
// writes run inside real transactions; everything else maps one statement
// per operation.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgres wraps an sqlx client in the store contract.
func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Kind() string { return "postgres" }

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "database unreachable")
	}
	return nil
}

const userColumns = `id, email, password_hash, name, role, created_at, updated_at`

const upsertUserQuery = `
	INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $6)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		role = EXCLUDED.role,
		password_hash = CASE WHEN EXCLUDED.password_hash <> '' THEN EXCLUDED.password_hash ELSE users.password_hash END,
		updated_at = EXCLUDED.updated_at
	RETURNING ` + userColumns

func (s *PostgresStore) UpsertUser(ctx context.Context, user models.User) (*models.User, error) {
	return upsertUser(ctx, s.db, user)
}

func upsertUser(ctx context.Context, q sqlx.ExtContext, user models.User) (*models.User, error) {
	now := time.Now().UTC()
	var stored models.User
	err := sqlx.GetContext(ctx, q, &stored, upsertUserQuery,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, now)
	if err != nil {
		return nil, mapStoreError(err, "upsert user")
	}
	return &stored, nil
}

func (s *PostgresStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := s.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, mapStoreError(err, "find user by id")
	}
	return &user, nil
}

func (s *PostgresStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1) LIMIT 1`
	var user models.User
	if err := s.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, mapStoreError(err, "find user by email")
	}
	return &user, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	sets := []string{}
	args := []interface{}{id}

	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.Role != nil {
		args = append(args, *patch.Role)
		sets = append(sets, fmt.Sprintf("role = $%d", len(args)))
	}

	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $1 RETURNING %s`, strings.Join(sets, ", "), userColumns)
	var user models.User
	if err := s.db.GetContext(ctx, &user, query, args...); err != nil {
		return nil, mapStoreError(err, "update user")
	}
	return &user, nil
}

const profileColumns = `id, user_id, phone, age, gender, address, district, city,
	highest_qualification, subjects, teaching_mode, experience, rate_type,
	rate_amount, availability, whatsapp_number, whatsapp_consent,
	additional_info, rating, reviews, created_at, updated_at`

const upsertProfileQuery = `
	INSERT INTO teacher_profiles (
		id, user_id, phone, age, gender, address, district, city,
		highest_qualification, subjects, teaching_mode, experience, rate_type,
		rate_amount, availability, whatsapp_number, whatsapp_consent,
		additional_info, rating, reviews, created_at, updated_at
	) VALUES (
		:id, :user_id, :phone, :age, :gender, :address, :district, :city,
		:highest_qualification, :subjects, :teaching_mode, :experience, :rate_type,
		:rate_amount, :availability, :whatsapp_number, :whatsapp_consent,
		:additional_info, :rating, :reviews, :created_at, :updated_at
	)
	ON CONFLICT (id) DO UPDATE SET
		phone = EXCLUDED.phone,
		age = EXCLUDED.age,
		gender = EXCLUDED.gender,
		address = EXCLUDED.address,
		district = EXCLUDED.district,
		city = EXCLUDED.city,
		highest_qualification = EXCLUDED.highest_qualification,
		subjects = EXCLUDED.subjects,
		teaching_mode = EXCLUDED.teaching_mode,
		experience = EXCLUDED.experience,
		rate_type = EXCLUDED.rate_type,
		rate_amount = EXCLUDED.rate_amount,
		availability = EXCLUDED.availability,
		whatsapp_number = EXCLUDED.whatsapp_number,
		whatsapp_consent = EXCLUDED.whatsapp_consent,
		additional_info = EXCLUDED.additional_info,
		updated_at = EXCLUDED.updated_at
	RETURNING ` + profileColumns

func (s *PostgresStore) UpsertTeacherProfile(ctx context.Context, profile models.TeacherProfile) (*models.TeacherProfile, error) {
	return upsertTeacherProfile(ctx, s.db, profile)
}

func upsertTeacherProfile(ctx context.Context, q sqlx.ExtContext, profile models.TeacherProfile) (*models.TeacherProfile, error) {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	rows, err := sqlx.NamedQueryContext(ctx, q, upsertProfileQuery, profile)
	if err != nil {
		return nil, mapStoreError(err, "upsert teacher profile")
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, mapStoreError(sql.ErrNoRows, "upsert teacher profile")
	}
	var stored models.TeacherProfile
	if err := rows.StructScan(&stored); err != nil {
		return nil, mapStoreError(err, "upsert teacher profile")
	}
	return &stored, nil
}

// teacherRow is the flat scan target for profile-with-user joins.
type teacherRow struct {
	models.TeacherProfile
	UID        sql.NullString `db:"u_id"`
	UEmail     sql.NullString `db:"u_email"`
	UName      sql.NullString `db:"u_name"`
	URole      sql.NullString `db:"u_role"`
	UCreatedAt sql.NullTime   `db:"u_created_at"`
	UUpdatedAt sql.NullTime   `db:"u_updated_at"`
}

func (r teacherRow) listing() models.TeacherListing {
	listing := models.TeacherListing{ID: r.TeacherProfile.ID, Profile: r.TeacherProfile}
	if r.UID.Valid {
		listing.User = &models.User{
			ID:        r.UID.String,
			Email:     r.UEmail.String,
			Name:      r.UName.String,
			Role:      models.UserRole(r.URole.String),
			CreatedAt: r.UCreatedAt.Time,
			UpdatedAt: r.UUpdatedAt.Time,
		}
	}
	return listing
}

const teacherJoinSelect = `
	SELECT p.id, p.user_id, p.phone, p.age, p.gender, p.address, p.district,
		p.city, p.highest_qualification, p.subjects, p.teaching_mode,
		p.experience, p.rate_type, p.rate_amount, p.availability,
		p.whatsapp_number, p.whatsapp_consent, p.additional_info, p.rating,
		p.reviews, p.created_at, p.updated_at,
		u.id AS u_id, u.email AS u_email, u.name AS u_name, u.role AS u_role,
		u.created_at AS u_created_at, u.updated_at AS u_updated_at
	FROM teacher_profiles p
	LEFT JOIN users u ON u.id = p.user_id`

func (s *PostgresStore) FindTeacherByID(ctx context.Context, id string) (*models.TeacherListing, error) {
	query := teacherJoinSelect + ` WHERE p.id = $1 LIMIT 1`
	var row teacherRow
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, mapStoreError(err, "find teacher by id")
	}
	listing := row.listing()
	return &listing, nil
}

func (s *PostgresStore) FindTeacherByUserID(ctx context.Context, userID string) (*models.TeacherListing, error) {
	query := teacherJoinSelect + ` WHERE p.user_id = $1 LIMIT 1`
	var row teacherRow
	if err := s.db.GetContext(ctx, &row, query, userID); err != nil {
		return nil, mapStoreError(err, "find teacher by user id")
	}
	listing := row.listing()
	return &listing, nil
}

func (s *PostgresStore) ListTeachers(ctx context.Context) ([]models.TeacherListing, error) {
	query := teacherJoinSelect + ` ORDER BY p.created_at DESC`
	var rows []teacherRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, mapStoreError(err, "list teachers")
	}

	listings := make([]models.TeacherListing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, row.listing())
	}
	return listings, nil
}

func (s *PostgresStore) UpdateTeacherProfile(ctx context.Context, userID string, patch models.TeacherProfilePatch) (*models.TeacherProfile, error) {
	sets := []string{}
	args := []interface{}{userID}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Age != nil {
		add("age", *patch.Age)
	}
	if patch.Gender != nil {
		add("gender", *patch.Gender)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	if patch.District != nil {
		add("district", *patch.District)
	}
	if patch.City != nil {
		add("city", *patch.City)
	}
	if patch.HighestQualification != nil {
		add("highest_qualification", *patch.HighestQualification)
	}
	if patch.Subjects != nil {
		add("subjects", *patch.Subjects)
	}
	if patch.TeachingMode != nil {
		add("teaching_mode", *patch.TeachingMode)
	}
	if patch.Experience != nil {
		add("experience", *patch.Experience)
	}
	if patch.RateType != nil {
		add("rate_type", *patch.RateType)
	}
	if patch.RateAmount != nil {
		add("rate_amount", *patch.RateAmount)
	}
	if patch.Availability != nil {
		add("availability", *patch.Availability)
	}
	if patch.WhatsappNumber != nil {
		add("whatsapp_number", *patch.WhatsappNumber)
	}
	if patch.WhatsappConsent != nil {
		add("whatsapp_consent", *patch.WhatsappConsent)
	}
	if patch.AdditionalInfo != nil {
		add("additional_info", *patch.AdditionalInfo)
	}

	add("updated_at", time.Now().UTC())

	query := fmt.Sprintf(`UPDATE teacher_profiles SET %s WHERE user_id = $1 RETURNING %s`, strings.Join(sets, ", "), profileColumns)
	var profile models.TeacherProfile
	if err := s.db.GetContext(ctx, &profile, query, args...); err != nil {
		return nil, mapStoreError(err, "update teacher profile")
	}
	return &profile, nil
}

// RegisterTeacher writes the user and its profile in one transaction. A
// failure on either statement rolls back both, so the store never holds a
// profile without its user or the reverse.
func (s *PostgresStore) RegisterTeacher(ctx context.Context, user models.User, profile models.TeacherProfile) (*models.User, *models.TeacherProfile, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, mapStoreError(err, "begin register teacher")
	}
	defer tx.Rollback() //nolint:errcheck

	storedUser, err := upsertUser(ctx, tx, user)
	if err != nil {
		return nil, nil, err
	}

	storedProfile, err := upsertTeacherProfile(ctx, tx, profile)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, mapStoreError(err, "commit register teacher")
	}
	return storedUser, storedProfile, nil
}

func (s *PostgresStore) DeleteTeacher(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return mapStoreError(err, "begin delete teacher")
	}
	defer tx.Rollback() //nolint:errcheck

	profileRes, err := tx.ExecContext(ctx, `DELETE FROM teacher_profiles WHERE id = $1`, id)
	if err != nil {
		return mapStoreError(err, "delete teacher profile")
	}

	userRes, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapStoreError(err, "delete teacher user")
	}

	profiles, _ := profileRes.RowsAffected()
	users, _ := userRes.RowsAffected()
	if profiles == 0 && users == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	if err := tx.Commit(); err != nil {
		return mapStoreError(err, "commit delete teacher")
	}
	return nil
}

// mapStoreError converts driver-level failures into the typed taxonomy:
// missing rows, constraint violations and unreachable databases each keep a
// distinguishable code for the facade to translate.
func mapStoreError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, "record not found")
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "duplicate key")
		case pqForeignKeyViolation:
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "related record missing")
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "database unreachable")
	}

	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("%s failed", op))
}
