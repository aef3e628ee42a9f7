package dto

// CreateProgramRequest represents program creation data
type CreateProgramRequest struct {
	Name string `json:"name" binding:"required"`
	Term string `json:"term" binding:"required,oneof=FALL SPRING SUMMER"`
}

// UpdateProgramRequest represents program update data
type UpdateProgramRequest struct {
	Name string `json:"name" binding:"required"`
	Term string `json:"term" binding:"required,oneof=FALL SPRING SUMMER"`
}

// ProgramResponse represents basic program information
type ProgramResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Term string `json:"term"`
}

// ProgramListResponse represents a list of programs
type ProgramListResponse struct {
	Programs []ProgramResponse `json:"programs"`
}

// CreateProgramItemRequest represents weekly slot creation data. The slot
// fields are optional: an item may be created unconfigured and scheduled
// later. Dates use the YYYY-MM-DD format, times HH:MM:SS.
type CreateProgramItemRequest struct {
	ClassID    int64   `json:"classId" binding:"required,gt=0"`
	DayOfWeek  *int    `json:"dayOfWeek,omitempty" binding:"omitempty,min=0,max=6"`
	StartTime  *string `json:"startTime,omitempty" example:"10:00:00"`
	EndTime    *string `json:"endTime,omitempty" example:"11:00:00"`
	ValidFrom  *string `json:"validFrom,omitempty" example:"2026-02-01"`
	ValidUntil *string `json:"validUntil,omitempty" example:"2026-06-30"`
}

// UpdateProgramItemRequest represents weekly slot update data. The full slot
// state is replaced; omitted fields clear the corresponding column.
type UpdateProgramItemRequest struct {
	ClassID    int64   `json:"classId" binding:"required,gt=0"`
	DayOfWeek  *int    `json:"dayOfWeek,omitempty" binding:"omitempty,min=0,max=6"`
	StartTime  *string `json:"startTime,omitempty" example:"10:00:00"`
	EndTime    *string `json:"endTime,omitempty" example:"11:00:00"`
	ValidFrom  *string `json:"validFrom,omitempty" example:"2026-02-01"`
	ValidUntil *string `json:"validUntil,omitempty" example:"2026-06-30"`
}

// ProgramItemResponse represents one weekly slot of a program
type ProgramItemResponse struct {
	ID         int64          `json:"id"`
	ProgramID  int64          `json:"programId"`
	ClassID    int64          `json:"classId"`
	DayOfWeek  *int           `json:"dayOfWeek,omitempty"`
	StartTime  *string        `json:"startTime,omitempty"`
	EndTime    *string        `json:"endTime,omitempty"`
	ValidFrom  *string        `json:"validFrom,omitempty"`
	ValidUntil *string        `json:"validUntil,omitempty"`
	Class      *ClassResponse `json:"class,omitempty"`
}

// ProgramItemListResponse represents the weekly slots of a program
type ProgramItemListResponse struct {
	Items []ProgramItemResponse `json:"items"`
}
