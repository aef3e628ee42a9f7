package dto

// CreateClassRequest represents class creation data
type CreateClassRequest struct {
	Name      string `json:"name" binding:"required"`
	SubjectID int64  `json:"subjectId" binding:"required,gt=0"`
	TutorID   int64  `json:"tutorId" binding:"required,gt=0"`
	Capacity  int    `json:"capacity" binding:"required,gt=0"`
}

// UpdateClassRequest represents class update data
type UpdateClassRequest struct {
	Name      string `json:"name" binding:"required"`
	SubjectID int64  `json:"subjectId" binding:"required,gt=0"`
	TutorID   int64  `json:"tutorId" binding:"required,gt=0"`
	Capacity  int    `json:"capacity" binding:"required,gt=0"`
}

// ClassResponse represents basic class information
type ClassResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SubjectID   int64  `json:"subjectId"`
	SubjectName string `json:"subjectName,omitempty"`
	TutorID     int64  `json:"tutorId"`
	TutorName   string `json:"tutorName,omitempty"`
	Capacity    int    `json:"capacity"`
}

// ClassListResponse represents a list of classes
type ClassListResponse struct {
	Classes []ClassResponse `json:"classes"`
}
