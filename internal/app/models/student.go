package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID         int64     `json:"id" db:"id"`
	FirstName  string    `json:"firstName" db:"first_name"`
	LastName   string    `json:"lastName" db:"last_name"`
	Email      string    `json:"email" db:"email"`
	Phone      *string   `json:"phone,omitempty" db:"phone"` // Pointer for potential NULL
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
}
