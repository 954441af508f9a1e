package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/summercamp-api/internal/models"
	appErrors "github.com/noah-isme/summercamp-api/pkg/errors"
)

type mockClassRepo struct {
	mu      sync.Mutex
	classes map[string]*models.Class

	createErr   error
	listErr     error
	popularList []models.Class
	popularHits int
}

func newMockClassRepo(classes ...*models.Class) *mockClassRepo {
	m := &mockClassRepo{classes: make(map[string]*models.Class)}
	for _, c := range classes {
		m.classes[c.ID] = c
	}
	return m
}

func (m *mockClassRepo) Create(ctx context.Context, class *models.Class) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if class.ID == "" {
		class.ID = "generated"
	}
	m.classes[class.ID] = class
	return nil
}

func (m *mockClassRepo) FindByID(ctx context.Context, id string) (*models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	class, ok := m.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *class
	return &copied, nil
}

func (m *mockClassRepo) List(ctx context.Context) ([]models.Class, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Class
	for _, c := range m.classes {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockClassRepo) ListByStatus(ctx context.Context, status models.ClassStatus) ([]models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Class
	for _, c := range m.classes {
		if c.Status == status {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockClassRepo) ListPopular(ctx context.Context) ([]models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.popularHits++
	return m.popularList, nil
}

func (m *mockClassRepo) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Class
	for _, c := range m.classes {
		if c.InstructorEmail == email {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockClassRepo) UpdateStatus(ctx context.Context, id string, status models.ClassStatus) (*models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	class, ok := m.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	class.Status = status
	copied := *class
	return &copied, nil
}

func (m *mockClassRepo) SetFeedback(ctx context.Context, id, feedback string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	class, ok := m.classes[id]
	if !ok {
		return 0, nil
	}
	class.Feedback = &feedback
	return 1, nil
}

// ReserveSeat mirrors the storage-level conditional update: the capacity
// check and the decrement happen under one lock.
func (m *mockClassRepo) ReserveSeat(ctx context.Context, id string) (*models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	class, ok := m.classes[id]
	if !ok || class.Seats <= 0 {
		return nil, sql.ErrNoRows
	}
	class.Seats--
	class.Enrolled++
	copied := *class
	return &copied, nil
}

type mockListingCache struct {
	mu      sync.Mutex
	store   map[string][]models.Class
	deletes int
}

func (m *mockListingCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cached, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	ptr, ok := dest.(*[]models.Class)
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*ptr = cached
	return nil
}

func (m *mockListingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store == nil {
		m.store = make(map[string][]models.Class)
	}
	if classes, ok := value.([]models.Class); ok {
		m.store[key] = classes
	}
	return nil
}

func (m *mockListingCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.store, key)
	}
	m.deletes++
	return nil
}

func instructorClaims() *models.JWTClaims {
	return &models.JWTClaims{Email: "ann@example.com", Name: "Ann"}
}

func TestCreateClassForcesPendingStatus(t *testing.T) {
	repo := newMockClassRepo()
	svc := NewClassService(repo, nil, nil, validator.New(), zap.NewNop(), 0)

	class, err := svc.Create(context.Background(), CreateClassRequest{Name: "Pottery", Price: 40, Seats: 10}, instructorClaims())
	require.NoError(t, err)
	assert.Equal(t, models.ClassStatusPending, class.Status)
	assert.Equal(t, "ann@example.com", class.InstructorEmail)
	assert.Zero(t, class.Enrolled)
}

func TestCreateClassRequiresClaims(t *testing.T) {
	repo := newMockClassRepo()
	svc := NewClassService(repo, nil, nil, validator.New(), zap.NewNop(), 0)

	_, err := svc.Create(context.Background(), CreateClassRequest{Name: "Pottery", Price: 40, Seats: 10}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestApproveIsIdempotent(t *testing.T) {
	repo := newMockClassRepo(&models.Class{ID: "c1", Name: "Pottery", Status: models.ClassStatusPending, Seats: 10})
	svc := NewClassService(repo, nil, nil, validator.New(), zap.NewNop(), 0)

	first, err := svc.Approve(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, models.ClassStatusApproved, first.Status)

	second, err := svc.Approve(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestApproveMissingClass(t *testing.T) {
	repo := newMockClassRepo()
	svc := NewClassService(repo, nil, nil, validator.New(), zap.NewNop(), 0)

	_, err := svc.Approve(context.Background(), "gone")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReserveSeatMovesOneUnit(t *testing.T) {
	repo := newMockClassRepo(&models.Class{ID: "c1", Name: "Pottery", Status: models.ClassStatusApproved, Seats: 3, Enrolled: 7})
	svc := NewClassService(repo, nil, nil, validator.New(), zap.NewNop(), 0)

	class, err := svc.ReserveSeat(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, class.Seats)
	assert.Equal(t, 8, class.Enrolled)
}

func TestReserveSeatCapacityExhausted(t *testing.T) {
	repo := newMockClassRepo(&models.Class{ID: "c1", Name: "Pottery", Status: models.ClassStatusApproved, Seats: 0, Enrolled: 10})
	svc := NewClassService(repo, nil, nil, validator.New(), zap.NewNop(), 0)

	_, err := svc.ReserveSeat(context.Background(), "c1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrCapacityExhausted.Code, appErrors.FromError(err).Code)

	// The stored record is untouched.
	class, findErr := repo.FindByID(context.Background(), "c1")
	require.NoError(t, findErr)
	assert.Equal(t, 0, class.Seats)
	assert.Equal(t, 10, class.Enrolled)
}

func TestReserveSeatMissingClass(t *testing.T) {
	repo := newMockClassRepo()
	svc := NewClassService(repo, nil, nil, validator.New(), zap.NewNop(), 0)

	_, err := svc.ReserveSeat(context.Background(), "gone")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReserveSeatConcurrentSingleWinner(t *testing.T) {
	repo := newMockClassRepo(&models.Class{ID: "c1", Name: "Pottery", Status: models.ClassStatusApproved, Seats: 1, Enrolled: 9})
	svc := NewClassService(repo, nil, nil, validator.New(), zap.NewNop(), 0)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.ReserveSeat(context.Background(), "c1")
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.Equal(t, appErrors.ErrCapacityExhausted.Code, appErrors.FromError(err).Code)
		}
	}
	assert.Equal(t, 1, successes)

	class, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 0, class.Seats)
	assert.Equal(t, 10, class.Enrolled)
}

func TestListPopularUsesCache(t *testing.T) {
	repo := newMockClassRepo()
	repo.popularList = []models.Class{{ID: "c2", Name: "Kayaking", Enrolled: 18}, {ID: "c1", Name: "Pottery", Enrolled: 6}}
	cache := &mockListingCache{}
	svc := NewClassService(repo, cache, nil, validator.New(), zap.NewNop(), time.Minute)

	first, err := svc.ListPopular(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, repo.popularHits)

	second, err := svc.ListPopular(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.popularHits, "second read served from cache")
}

func TestApproveInvalidatesPopularCache(t *testing.T) {
	repo := newMockClassRepo(&models.Class{ID: "c1", Name: "Pottery", Status: models.ClassStatusPending})
	repo.popularList = []models.Class{{ID: "c1", Name: "Pottery"}}
	cache := &mockListingCache{}
	svc := NewClassService(repo, cache, nil, validator.New(), zap.NewNop(), time.Minute)

	_, err := svc.ListPopular(context.Background())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.deletes)

	_, err = svc.ListPopular(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.popularHits, "cache was invalidated by the transition")
}

func TestListApprovedExcludesOtherStatuses(t *testing.T) {
	repo := newMockClassRepo(
		&models.Class{ID: "c1", Name: "Pottery", Status: models.ClassStatusApproved},
		&models.Class{ID: "c2", Name: "Kayaking", Status: models.ClassStatusPending},
		&models.Class{ID: "c3", Name: "Archery", Status: models.ClassStatusDenied},
	)
	svc := NewClassService(repo, nil, nil, validator.New(), zap.NewNop(), 0)

	classes, err := svc.ListApproved(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Pottery", classes[0].Name)
}

func TestSetFeedbackMissingClassReturnsNotFound(t *testing.T) {
	repo := newMockClassRepo()
	svc := NewClassService(repo, nil, nil, validator.New(), zap.NewNop(), 0)

	err := svc.SetFeedback(context.Background(), "gone", FeedbackRequest{Feedback: "needs detail"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
