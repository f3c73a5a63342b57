package store

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamroguru/tutor-api/internal/models"
	appErrors "github.com/hamroguru/tutor-api/pkg/errors"
)

func newMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return NewPostgres(sqlxdb), mock, func() {
		db.Close()
	}
}

var userCols = []string{"id", "email", "password_hash", "name", "role", "created_at", "updated_at"}

var profileCols = []string{
	"id", "user_id", "phone", "age", "gender", "address", "district", "city",
	"highest_qualification", "subjects", "teaching_mode", "experience", "rate_type",
	"rate_amount", "availability", "whatsapp_number", "whatsapp_consent",
	"additional_info", "rating", "reviews", "created_at", "updated_at",
}

func profileRowValues(id string, now time.Time) []driver.Value {
	return []driver.Value{
		id, id, "123", 30, "female", "", "", "Kathmandu",
		"MSc", "Math, Physics", "online", "5 years", "hourly",
		800.0, "Weekdays", "123", true,
		"", 0.0, 0, now, now,
	}
}

func TestPostgresFindUserByEmail(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(userCols).
		AddRow("u1", "bob@example.com", "hash", "Bob", string(models.RoleStudent), now, now)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE LOWER\(email\)`).
		WithArgs("bob@example.com").
		WillReturnRows(rows)

	user, err := s.FindUserByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindUserByIDNotFound(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := s.FindUserByID(context.Background(), "missing")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpsertUser(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(userCols).
		AddRow("u1", "bob@example.com", "", "Bob", string(models.RoleStudent), now, now)
	mock.ExpectQuery(`INSERT INTO users`).WillReturnRows(rows)

	user, err := s.UpsertUser(context.Background(), models.User{
		ID: "u1", Email: "bob@example.com", Name: "Bob", Role: models.RoleStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bob", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpsertUserDuplicateEmail(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	_, err := s.UpsertUser(context.Background(), models.User{
		ID: "u2", Email: "taken@example.com", Role: models.RoleStudent,
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListTeachersJoinsUser(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now()
	cols := append(append([]string{}, profileCols...),
		"u_id", "u_email", "u_name", "u_role", "u_created_at", "u_updated_at")
	values := append(profileRowValues("t1", now),
		"t1", "t1@x.com", "Alice", string(models.RoleTeacher), now, now)

	rows := sqlmock.NewRows(cols).AddRow(values...)
	mock.ExpectQuery(`FROM teacher_profiles p\s+LEFT JOIN users u`).WillReturnRows(rows)

	listings, err := s.ListTeachers(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "t1", listings[0].ID)
	assert.Equal(t, "Math, Physics", listings[0].Profile.Subjects)
	require.NotNil(t, listings[0].User)
	assert.Equal(t, "Alice", listings[0].User.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRegisterTeacherCommits(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("t1", "t1@x.com", "", "Alice", string(models.RoleTeacher), now, now))
	mock.ExpectQuery(`INSERT INTO teacher_profiles`).
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow(profileRowValues("t1", now)...))
	mock.ExpectCommit()

	user, profile, err := s.RegisterTeacher(context.Background(),
		models.User{ID: "t1", Email: "t1@x.com", Name: "Alice", Role: models.RoleTeacher},
		models.TeacherProfile{ID: "t1", UserID: "t1", Subjects: "Math, Physics"},
	)
	require.NoError(t, err)
	assert.Equal(t, "t1", user.ID)
	assert.Equal(t, "t1", profile.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRegisterTeacherRollsBackOnProfileFailure(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("t1", "t1@x.com", "", "Alice", string(models.RoleTeacher), now, now))
	mock.ExpectQuery(`INSERT INTO teacher_profiles`).
		WillReturnError(&pq.Error{Code: pqForeignKeyViolation})
	mock.ExpectRollback()

	_, _, err := s.RegisterTeacher(context.Background(),
		models.User{ID: "t1", Email: "t1@x.com", Role: models.RoleTeacher},
		models.TeacherProfile{ID: "t1", UserID: "t1"},
	)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteTeacher(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM teacher_profiles`).WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM users`).WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.DeleteTeacher(context.Background(), "t1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteTeacherNotFound(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM teacher_profiles`).WithArgs("zz").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM users`).WithArgs("zz").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.DeleteTeacher(context.Background(), "zz")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateTeacherProfilePatch(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`UPDATE teacher_profiles SET city = \$2, updated_at = \$3 WHERE user_id = \$1`).
		WithArgs("t1", "Pokhara", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow(profileRowValues("t1", now)...))

	city := "Pokhara"
	_, err := s.UpdateTeacherProfile(context.Background(), "t1", models.TeacherProfilePatch{City: &city})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
