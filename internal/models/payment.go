package models

import "time"

// Payment is an append-only record of a completed charge. One record per
// successful payment; immutable once written.
type Payment struct {
	ID            string    `db:"id" json:"id"`
	StudentEmail  string    `db:"student_email" json:"student_email"`
	ClassID       string    `db:"class_id" json:"class_id"`
	ClassName     string    `db:"class_name" json:"class_name"`
	Amount        float64   `db:"amount" json:"amount"`
	TransactionID string    `db:"transaction_id" json:"transaction_id"`
	PaidAt        time.Time `db:"paid_at" json:"paid_at"`
}
