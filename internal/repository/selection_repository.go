package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/summercamp-api/internal/models"
)

const selectionColumns = `id, student_email, class_id, class_name, class_image_url, instructor_name, price, created_at`

// SelectionRepository handles persistence of pending class selections.
type SelectionRepository struct {
	db *sqlx.DB
}

// NewSelectionRepository constructs the repository.
func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// Create persists a new selection.
func (r *SelectionRepository) Create(ctx context.Context, selection *models.Selection) error {
	if selection.ID == "" {
		selection.ID = uuid.NewString()
	}
	if selection.CreatedAt.IsZero() {
		selection.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO selections (id, student_email, class_id, class_name, class_image_url, instructor_name, price, created_at)
        VALUES (:id, :student_email, :class_id, :class_name, :class_image_url, :instructor_name, :price, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, selection); err != nil {
		return fmt.Errorf("create selection: %w", err)
	}
	return nil
}

// ListByStudent returns the student's pending selections.
func (r *SelectionRepository) ListByStudent(ctx context.Context, email string) ([]models.Selection, error) {
	query := fmt.Sprintf(`SELECT %s FROM selections WHERE student_email = $1 ORDER BY created_at DESC`, selectionColumns)
	var selections []models.Selection
	if err := r.db.SelectContext(ctx, &selections, query, email); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	return selections, nil
}

// FindByClassID returns the selection referencing the given class.
func (r *SelectionRepository) FindByClassID(ctx context.Context, classID string) (*models.Selection, error) {
	query := fmt.Sprintf(`SELECT %s FROM selections WHERE class_id = $1 LIMIT 1`, selectionColumns)
	var selection models.Selection
	if err := r.db.GetContext(ctx, &selection, query, classID); err != nil {
		return nil, err
	}
	return &selection, nil
}

// DeleteByID removes a selection, returning the number of rows removed.
func (r *SelectionRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM selections WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete selection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete selection result: %w", err)
	}
	return affected, nil
}

// DeleteByClassAndStudent removes the student's selection for a class. Zero
// rows is a legitimate outcome when the selection was already consumed.
func (r *SelectionRepository) DeleteByClassAndStudent(ctx context.Context, classID, email string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM selections WHERE class_id = $1 AND student_email = $2`, classID, email)
	if err != nil {
		return 0, fmt.Errorf("delete selection by class: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete selection by class result: %w", err)
	}
	return affected, nil
}
