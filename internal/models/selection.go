package models

import "time"

// Selection is a student's pending choice of a class, prior to payment. It
// carries a denormalized snapshot of the class for display. A selection is
// destroyed exactly once: either removed explicitly or consumed by a
// successful payment.
type Selection struct {
	ID             string    `db:"id" json:"id"`
	StudentEmail   string    `db:"student_email" json:"student_email"`
	ClassID        string    `db:"class_id" json:"class_id"`
	ClassName      string    `db:"class_name" json:"class_name"`
	ClassImageURL  *string   `db:"class_image_url" json:"class_image_url,omitempty"`
	InstructorName string    `db:"instructor_name" json:"instructor_name"`
	Price          float64   `db:"price" json:"price"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
