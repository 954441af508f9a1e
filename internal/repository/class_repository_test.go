package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/summercamp-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func classRows(id string, seats, enrolled int, status models.ClassStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "image_url", "instructor_name", "instructor_email", "price", "seats", "enrolled", "status", "feedback", "created_at", "updated_at"}).
		AddRow(id, "Pottery", nil, "Ann", "ann@example.com", 40.0, seats, enrolled, string(status), nil, now, now)
}

func TestReserveSeatConditionalUpdate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE classes SET seats = seats - 1, enrolled = enrolled + 1, updated_at = $2")).
		WithArgs("c1", sqlmock.AnyArg()).
		WillReturnRows(classRows("c1", 4, 6, models.ClassStatusApproved))

	class, err := repo.ReserveSeat(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 4, class.Seats)
	assert.Equal(t, 6, class.Enrolled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSeatNoMatchingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE classes SET seats = seats - 1")).
		WithArgs("gone", sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.ReserveSeat(context.Background(), "gone")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPopularOrdering(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "image_url", "instructor_name", "instructor_email", "price", "seats", "enrolled", "status", "feedback", "created_at", "updated_at"}).
		AddRow("c2", "Kayaking", nil, "Bob", "bob@example.com", 55.0, 2, 18, string(models.ClassStatusApproved), nil, now, now).
		AddRow("c1", "Pottery", nil, "Ann", "ann@example.com", 40.0, 4, 6, string(models.ClassStatusApproved), nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 ORDER BY enrolled DESC, id ASC")).
		WithArgs(models.ClassStatusApproved).
		WillReturnRows(rows)

	classes, err := repo.ListPopular(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, "Kayaking", classes[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusReturnsRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE classes SET status = $2, updated_at = $3 WHERE id = $1 RETURNING")).
		WithArgs("c1", models.ClassStatusApproved, sqlmock.AnyArg()).
		WillReturnRows(classRows("c1", 4, 6, models.ClassStatusApproved))

	class, err := repo.UpdateStatus(context.Background(), "c1", models.ClassStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ClassStatusApproved, class.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetFeedbackMissingClass(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE classes SET feedback = $2")).
		WithArgs("gone", "needs detail", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.SetFeedback(context.Background(), "gone", "needs detail")
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClassAssignsID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec("INSERT INTO classes").WillReturnResult(sqlmock.NewResult(1, 1))

	class := &models.Class{Name: "Pottery", InstructorName: "Ann", InstructorEmail: "ann@example.com", Price: 40, Seats: 10, Status: models.ClassStatusPending}
	err := repo.Create(context.Background(), class)
	require.NoError(t, err)
	assert.NotEmpty(t, class.ID)
	assert.False(t, class.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
