package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/summercamp-api/internal/models"
	"github.com/noah-isme/summercamp-api/internal/service"
)

type stubClassRepo struct {
	class *models.Class
	seats int
}

func (s *stubClassRepo) Create(ctx context.Context, class *models.Class) error { return nil }

func (s *stubClassRepo) FindByID(ctx context.Context, id string) (*models.Class, error) {
	if s.class == nil {
		return nil, sql.ErrNoRows
	}
	return s.class, nil
}

func (s *stubClassRepo) List(ctx context.Context) ([]models.Class, error) { return nil, nil }

func (s *stubClassRepo) ListByStatus(ctx context.Context, status models.ClassStatus) ([]models.Class, error) {
	return nil, nil
}

func (s *stubClassRepo) ListPopular(ctx context.Context) ([]models.Class, error) { return nil, nil }

func (s *stubClassRepo) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	return nil, nil
}

func (s *stubClassRepo) UpdateStatus(ctx context.Context, id string, status models.ClassStatus) (*models.Class, error) {
	if s.class == nil {
		return nil, sql.ErrNoRows
	}
	s.class.Status = status
	return s.class, nil
}

func (s *stubClassRepo) SetFeedback(ctx context.Context, id, feedback string) (int64, error) {
	if s.class == nil {
		return 0, nil
	}
	return 1, nil
}

func (s *stubClassRepo) ReserveSeat(ctx context.Context, id string) (*models.Class, error) {
	if s.class == nil || s.seats <= 0 {
		return nil, sql.ErrNoRows
	}
	s.seats--
	s.class.Seats = s.seats
	s.class.Enrolled++
	return s.class, nil
}

func newClassHandler(repo *stubClassRepo) *ClassHandler {
	return NewClassHandler(service.NewClassService(repo, nil, nil, nil, nil, 0))
}

func seatRequest(t *testing.T, handler *ClassHandler, id string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPut, "/class/seats/"+id, nil)
	require.NoError(t, err)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id}}
	handler.ReserveSeat(c)
	return w
}

func TestReserveSeatHandlerSuccess(t *testing.T) {
	repo := &stubClassRepo{class: &models.Class{ID: "c1", Name: "Pottery", Status: models.ClassStatusApproved, Seats: 3}, seats: 3}
	w := seatRequest(t, newClassHandler(repo), "c1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pottery")
}

func TestReserveSeatHandlerNotFound(t *testing.T) {
	w := seatRequest(t, newClassHandler(&stubClassRepo{}), "gone")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestReserveSeatHandlerCapacityExhausted(t *testing.T) {
	repo := &stubClassRepo{class: &models.Class{ID: "c1", Name: "Pottery", Status: models.ClassStatusApproved, Seats: 0}, seats: 0}
	w := seatRequest(t, newClassHandler(repo), "c1")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CAPACITY_EXHAUSTED")
}
