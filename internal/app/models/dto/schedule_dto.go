package dto

// OccurrenceResponse represents one concrete timetable entry on one date.
// Occurrences are computed from the weekly rules and overrides at read time
// and carry no identity of their own.
type OccurrenceResponse struct {
	ProgramItemID int64          `json:"programItemId"`
	ProgramID     int64          `json:"programId"`
	ClassID       int64          `json:"classId"`
	Date          string         `json:"date" example:"2026-03-10"`
	StartTime     string         `json:"startTime" example:"10:00:00"`
	EndTime       string         `json:"endTime" example:"11:00:00"`
	Overridden    bool           `json:"overridden"`
	Class         *ClassResponse `json:"class,omitempty"`
}

// TimetableResponse represents the materialized timetable of a program for
// an inclusive date window
type TimetableResponse struct {
	ProgramID   int64                `json:"programId"`
	From        string               `json:"from" example:"2026-03-09"`
	To          string               `json:"to" example:"2026-03-15"`
	Occurrences []OccurrenceResponse `json:"occurrences"`
}

// RetimeOccurrenceRequest pins one occurrence to replacement times
type RetimeOccurrenceRequest struct {
	Date      string  `json:"date" binding:"required" example:"2026-03-10"`
	StartTime *string `json:"startTime,omitempty" example:"14:00:00"`
	EndTime   *string `json:"endTime,omitempty" example:"15:00:00"`
}

// RelocateOccurrenceRequest moves one occurrence to another date
type RelocateOccurrenceRequest struct {
	OldDate   string  `json:"oldDate" binding:"required" example:"2026-03-10"`
	NewDate   string  `json:"newDate" binding:"required" example:"2026-03-12"`
	StartTime *string `json:"startTime,omitempty" example:"14:00:00"`
	EndTime   *string `json:"endTime,omitempty" example:"15:00:00"`
}

// CancelOccurrenceRequest suppresses one occurrence
type CancelOccurrenceRequest struct {
	Date string `json:"date" binding:"required" example:"2026-03-10"`
}

// OverrideResponse represents the stored exception row behind an edited
// occurrence
type OverrideResponse struct {
	ID            int64   `json:"id"`
	ProgramItemID int64   `json:"programItemId"`
	Date          string  `json:"date" example:"2026-03-10"`
	StartTime     *string `json:"startTime,omitempty"`
	EndTime       *string `json:"endTime,omitempty"`
	Cancelled     bool    `json:"cancelled"`
}
