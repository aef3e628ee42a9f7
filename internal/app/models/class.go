package models

// Class represents a class group: one tutor teaching one subject to a group of students.
type Class struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	SubjectID int64  `json:"subjectId" db:"subject_id"`
	TutorID   int64  `json:"tutorId" db:"tutor_id"`
	Capacity  int    `json:"capacity" db:"capacity"`

	// Relations (populated when needed)
	Subject *Subject `json:"subject,omitempty"`
	Tutor   *Tutor   `json:"tutor,omitempty"`
}
