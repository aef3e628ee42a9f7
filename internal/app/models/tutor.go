package models

// Tutor defines the tutor model based on the 'tutors' table
type Tutor struct {
	ID        int64   `json:"id" db:"id" example:"1"`                           // Unique identifier for the tutor
	FirstName string  `json:"firstName" db:"first_name" example:"Mark"`         // Tutor's first name
	LastName  string  `json:"lastName" db:"last_name" example:"Sloane"`         // Tutor's last name
	Email     string  `json:"email" db:"email" example:"mark@tutorhall.com"`    // Tutor's email address
	Phone     *string `json:"phone,omitempty" db:"phone" example:"+1555012345"` // Contact phone (nullable)
	SubjectID int64   `json:"subjectId" db:"subject_id" example:"2"`            // Primary subject taught

	// Relations (populated when needed)
	Subject *Subject `json:"subject,omitempty"`
}
