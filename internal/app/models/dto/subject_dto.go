package dto

// CreateSubjectRequest represents subject creation data
type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// UpdateSubjectRequest represents subject update data
type UpdateSubjectRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// SubjectResponse represents basic subject information
type SubjectResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// SubjectListResponse represents a list of subjects
type SubjectListResponse struct {
	Subjects []SubjectResponse `json:"subjects"`
}
