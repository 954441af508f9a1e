package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/summercamp-api/internal/models"
)

const classColumns = `id, name, image_url, instructor_name, instructor_email, price, seats, enrolled, status, feedback, created_at, updated_at`

// ClassRepository manages persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create persists a class record.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if class.CreatedAt.IsZero() {
		class.CreatedAt = now
	}
	class.UpdatedAt = now

	const query = `INSERT INTO classes (id, name, image_url, instructor_name, instructor_email, price, seats, enrolled, status, feedback, created_at, updated_at)
        VALUES (:id, :name, :image_url, :instructor_name, :instructor_email, :price, :seats, :enrolled, :status, :feedback, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// FindByID returns a class record by ID.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE id = $1`, classColumns)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// List returns all classes ordered by creation time.
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes ORDER BY created_at DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// ListByStatus returns classes in the given lifecycle state.
func (r *ClassRepository) ListByStatus(ctx context.Context, status models.ClassStatus) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE status = $1 ORDER BY created_at DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, status); err != nil {
		return nil, fmt.Errorf("list classes by status: %w", err)
	}
	return classes, nil
}

// ListPopular returns approved classes ranked by enrolled count. The id
// tie-break keeps the ordering deterministic for a given stored state.
func (r *ClassRepository) ListPopular(ctx context.Context) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE status = $1 ORDER BY enrolled DESC, id ASC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, models.ClassStatusApproved); err != nil {
		return nil, fmt.Errorf("list popular classes: %w", err)
	}
	return classes, nil
}

// ListByInstructor returns the classes proposed by an instructor.
func (r *ClassRepository) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE instructor_email = $1 ORDER BY created_at DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, email); err != nil {
		return nil, fmt.Errorf("list instructor classes: %w", err)
	}
	return classes, nil
}

// UpdateStatus overwrites the lifecycle status and returns the updated row.
// Re-applying the same status is a no-op overwrite, not an error.
func (r *ClassRepository) UpdateStatus(ctx context.Context, id string, status models.ClassStatus) (*models.Class, error) {
	query := fmt.Sprintf(`UPDATE classes SET status = $2, updated_at = $3 WHERE id = $1 RETURNING %s`, classColumns)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id, status, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &class, nil
}

// SetFeedback attaches admin feedback to a class.
func (r *ClassRepository) SetFeedback(ctx context.Context, id, feedback string) (int64, error) {
	const query = `UPDATE classes SET feedback = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, feedback, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("set class feedback: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("set class feedback result: %w", err)
	}
	return affected, nil
}

// ReserveSeat converts one remaining seat into an enrolled count as a single
// conditional update, so concurrent reservations can never drive seats below
// zero. sql.ErrNoRows means the class is either missing or out of seats;
// callers disambiguate with FindByID.
func (r *ClassRepository) ReserveSeat(ctx context.Context, id string) (*models.Class, error) {
	query := fmt.Sprintf(`UPDATE classes SET seats = seats - 1, enrolled = enrolled + 1, updated_at = $2
        WHERE id = $1 AND seats > 0 RETURNING %s`, classColumns)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &class, nil
}
