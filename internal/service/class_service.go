package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/summercamp-api/internal/models"
	appErrors "github.com/noah-isme/summercamp-api/pkg/errors"
)

type classRepository interface {
	Create(ctx context.Context, class *models.Class) error
	FindByID(ctx context.Context, id string) (*models.Class, error)
	List(ctx context.Context) ([]models.Class, error)
	ListByStatus(ctx context.Context, status models.ClassStatus) ([]models.Class, error)
	ListPopular(ctx context.Context) ([]models.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]models.Class, error)
	UpdateStatus(ctx context.Context, id string, status models.ClassStatus) (*models.Class, error)
	SetFeedback(ctx context.Context, id, feedback string) (int64, error)
	ReserveSeat(ctx context.Context, id string) (*models.Class, error)
}

type listingCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const popularCacheKey = "classes:popular"

// CreateClassRequest captures an instructor's class proposal.
type CreateClassRequest struct {
	Name     string  `json:"name" validate:"required"`
	ImageURL *string `json:"image_url"`
	Price    float64 `json:"price" validate:"gte=0"`
	Seats    int     `json:"seats" validate:"gte=0"`
}

// FeedbackRequest attaches admin feedback to a class.
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

// ClassService enforces the class lifecycle state machine and the
// seat-capacity invariant.
type ClassService struct {
	repo      classRepository
	cache     listingCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, cache listingCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ClassService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger, cacheTTL: cacheTTL}
}

// Create adds a new class proposal. The status is always pending; only an
// admin transition can change it.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest, instructor *models.JWTClaims) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	if instructor == nil {
		return nil, appErrors.ErrUnauthorized
	}

	class := &models.Class{
		Name:            req.Name,
		ImageURL:        req.ImageURL,
		InstructorName:  instructor.Name,
		InstructorEmail: instructor.Email,
		Price:           req.Price,
		Seats:           req.Seats,
		Enrolled:        0,
		Status:          models.ClassStatusPending,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create class")
	}
	return class, nil
}

// Get returns a single class by ID.
func (s *ClassService) Get(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load class")
	}
	return class, nil
}

// List returns every class regardless of status. Admin review view.
func (s *ClassService) List(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list classes")
	}
	return classes, nil
}

// ListApproved returns only classes open for enrollment.
func (s *ClassService) ListApproved(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.ListByStatus(ctx, models.ClassStatusApproved)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list approved classes")
	}
	return classes, nil
}

// ListPopular returns approved classes ranked by enrolled count, served from
// the cache when warm.
func (s *ClassService) ListPopular(ctx context.Context) ([]models.Class, error) {
	if s.cache != nil {
		var cached []models.Class
		if err := s.cache.Get(ctx, popularCacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("popular classes cache read failed", zap.Error(err))
		}
	}

	classes, err := s.repo.ListPopular(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list popular classes")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, popularCacheKey, classes, s.cacheTTL); err != nil {
			s.logger.Warn("popular classes cache write failed", zap.Error(err))
		}
	}
	return classes, nil
}

// ListByInstructor returns the classes proposed by the given instructor.
func (s *ClassService) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	classes, err := s.repo.ListByInstructor(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list instructor classes")
	}
	return classes, nil
}

// Approve transitions a class to approved. Re-approving an approved class
// overwrites the same status and returns the unchanged document.
func (s *ClassService) Approve(ctx context.Context, id string) (*models.Class, error) {
	return s.transition(ctx, id, models.ClassStatusApproved)
}

// Deny transitions a class to denied. Idempotent like Approve.
func (s *ClassService) Deny(ctx context.Context, id string) (*models.Class, error) {
	return s.transition(ctx, id, models.ClassStatusDenied)
}

func (s *ClassService) transition(ctx context.Context, id string, status models.ClassStatus) (*models.Class, error) {
	class, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update class status")
	}
	s.invalidateListings(ctx)
	return class, nil
}

// SetFeedback attaches feedback text. Allowed at any lifecycle stage.
func (s *ClassService) SetFeedback(ctx context.Context, id string, req FeedbackRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload")
	}
	affected, err := s.repo.SetFeedback(ctx, id, req.Feedback)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to set feedback")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	return nil
}

// ReserveSeat converts one remaining seat into an enrolled count. The
// decrement is conditional at the storage layer, so the capacity check and
// the write are a single atomic step even under concurrent attempts.
func (s *ClassService) ReserveSeat(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.ReserveSeat(ctx, id)
	if err == nil {
		s.metrics.RecordSeatReservation("reserved")
		s.invalidateListings(ctx)
		return class, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to reserve seat")
	}

	// No row matched: the class is either absent or out of seats.
	if _, findErr := s.repo.FindByID(ctx, id); findErr != nil {
		if errors.Is(findErr, sql.ErrNoRows) {
			s.metrics.RecordSeatReservation("not_found")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(findErr, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load class")
	}
	s.metrics.RecordSeatReservation("exhausted")
	return nil, appErrors.Clone(appErrors.ErrCapacityExhausted, "no seats remaining for this class")
}

func (s *ClassService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, popularCacheKey); err != nil {
		s.logger.Warn("popular classes cache invalidation failed", zap.Error(err))
	}
}
