package models

// Subject represents a subject taught by the organization.
type Subject struct {
	ID   int64  `json:"id" db:"id" example:"1"`            // Unique identifier for the subject
	Name string `json:"name" db:"name" example:"Calculus"` // Subject name
	Code string `json:"code" db:"code" example:"MATH"`     // Short subject code
}
