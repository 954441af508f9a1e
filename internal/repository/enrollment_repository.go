package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/summercamp-api/internal/models"
)

// EnrollmentRepository executes the multi-step enrollment commit: seat
// reservation, payment append, and selection removal as one transaction.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// CheckoutResult reports the effects of a committed checkout.
type CheckoutResult struct {
	Class             *models.Class   `json:"class"`
	Payment           *models.Payment `json:"payment"`
	SelectionsRemoved int64           `json:"selections_removed"`
}

// Checkout reserves a seat, records the payment, and removes the student's
// selection inside a single transaction. Any failure rolls back all three
// effects. sql.ErrNoRows surfaces when the seat reservation matched no row
// (class missing or capacity exhausted).
func (r *EnrollmentRepository) Checkout(ctx context.Context, payment *models.Payment) (*CheckoutResult, error) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin checkout: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	reserveQuery := fmt.Sprintf(`UPDATE classes SET seats = seats - 1, enrolled = enrolled + 1, updated_at = $2
        WHERE id = $1 AND seats > 0 RETURNING %s`, classColumns)
	var class models.Class
	if err := tx.GetContext(ctx, &class, reserveQuery, payment.ClassID, time.Now().UTC()); err != nil {
		return nil, err
	}

	if payment.ClassName == "" {
		payment.ClassName = class.Name
	}
	const insertQuery = `INSERT INTO payments (id, student_email, class_id, class_name, amount, transaction_id, paid_at)
        VALUES (:id, :student_email, :class_id, :class_name, :amount, :transaction_id, :paid_at)`
	if _, err := tx.NamedExecContext(ctx, insertQuery, payment); err != nil {
		return nil, fmt.Errorf("checkout payment insert: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM selections WHERE class_id = $1 AND student_email = $2`, payment.ClassID, payment.StudentEmail)
	if err != nil {
		return nil, fmt.Errorf("checkout selection delete: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checkout selection delete result: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}

	return &CheckoutResult{Class: &class, Payment: payment, SelectionsRemoved: removed}, nil
}
