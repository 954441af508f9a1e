package models

import "time"

// ClassStatus is the lifecycle state of a proposed class.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusDenied   ClassStatus = "denied"
)

// Class represents an instructor's class offering. Capacity is conserved:
// every successful seat reservation moves exactly one unit from Seats to
// Enrolled, and Seats never goes below zero.
type Class struct {
	ID              string      `db:"id" json:"id"`
	Name            string      `db:"name" json:"name"`
	ImageURL        *string     `db:"image_url" json:"image_url,omitempty"`
	InstructorName  string      `db:"instructor_name" json:"instructor_name"`
	InstructorEmail string      `db:"instructor_email" json:"instructor_email"`
	Price           float64     `db:"price" json:"price"`
	Seats           int         `db:"seats" json:"seats"`
	Enrolled        int         `db:"enrolled" json:"enrolled"`
	Status          ClassStatus `db:"status" json:"status"`
	Feedback        *string     `db:"feedback" json:"feedback,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}
