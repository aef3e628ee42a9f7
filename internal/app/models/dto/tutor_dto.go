package dto

// CreateTutorRequest represents tutor creation data
type CreateTutorRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     *string `json:"phone,omitempty"`
	SubjectID int64   `json:"subjectId" binding:"required,gt=0"`
}

// UpdateTutorRequest represents tutor update data
type UpdateTutorRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     *string `json:"phone,omitempty"`
	SubjectID int64   `json:"subjectId" binding:"required,gt=0"`
}

// TutorResponse represents basic tutor information
type TutorResponse struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	SubjectID   int64   `json:"subjectId"`
	SubjectName string  `json:"subjectName,omitempty"`
}

// TutorListResponse represents a paginated list of tutors
type TutorListResponse struct {
	Tutors     []TutorResponse `json:"tutors"`
	Pagination PaginationInfo  `json:"pagination"`
}
