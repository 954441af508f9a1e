package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/summercamp-api/internal/models"
)

const paymentColumns = `id, student_email, class_id, class_name, amount, transaction_id, paid_at`

// PaymentRepository handles the append-only payment history.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a payment record. One call writes exactly one record.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC()
	}
	const query = `INSERT INTO payments (id, student_email, class_id, class_name, amount, transaction_id, paid_at)
        VALUES (:id, :student_email, :class_id, :class_name, :amount, :transaction_id, :paid_at)`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// ListByStudent returns the student's payments (enrolled classes view).
func (r *PaymentRepository) ListByStudent(ctx context.Context, email string) ([]models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE student_email = $1`, paymentColumns)
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, email); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// HistoryByStudent returns the student's payments newest first.
func (r *PaymentRepository) HistoryByStudent(ctx context.Context, email string) ([]models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE student_email = $1 ORDER BY paid_at DESC`, paymentColumns)
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, email); err != nil {
		return nil, fmt.Errorf("payment history: %w", err)
	}
	return payments, nil
}
