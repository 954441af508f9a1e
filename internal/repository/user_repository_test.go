package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/summercamp-api/internal/models"
)

func TestFindByEmailLowercases(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "photo_url", "role", "created_at"}).
		AddRow("u1", "kid@example.com", "Kid", nil, string(models.RoleStudent), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, name, photo_url, role, created_at FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("kid@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "Kid@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "kid@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"role"}).AddRow(string(models.RoleAdmin))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT role FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("boss@example.com").
		WillReturnRows(rows)

	role, err := repo.RoleByEmail(context.Background(), "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIfAbsentNewUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.User{Email: "Kid@Example.com", Name: "Kid", Role: models.RoleStudent}
	created, err := repo.CreateIfAbsent(context.Background(), user)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "kid@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIfAbsentExistingUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 0))

	user := &models.User{Email: "kid@example.com", Name: "Kid", Role: models.RoleStudent}
	created, err := repo.CreateIfAbsent(context.Background(), user)
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoleMissingUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role = $2 WHERE id = $1")).
		WithArgs("gone", models.RoleAdmin).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.UpdateRole(context.Background(), "gone", models.RoleAdmin)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
