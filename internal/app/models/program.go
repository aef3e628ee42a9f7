package models

import "time"

// Program represents a named weekly timetable for a term (e.g. "2026 Spring Evening Program").
type Program struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Term Term   `json:"term" db:"term"` // Uses Term from models.go

	// Relations (populated when needed)
	Items []*ProgramItem `json:"items,omitempty"`
}

// ProgramItem is a weekly recurrence rule: one class scheduled into a weekly
// slot of a program. DayOfWeek follows time.Weekday numbering (0=Sunday).
// A nil DayOfWeek, StartTime or EndTime means the slot is not yet configured
// and produces no occurrences. ValidFrom/ValidUntil bound the weeks the rule
// applies to; nil means unbounded on that side.
type ProgramItem struct {
	ID         int64      `json:"id" db:"id"`
	ProgramID  int64      `json:"programId" db:"program_id"`
	ClassID    int64      `json:"classId" db:"class_id"`
	DayOfWeek  *int       `json:"dayOfWeek,omitempty" db:"day_of_week" example:"2"`       // 0=Sunday .. 6=Saturday
	StartTime  *string    `json:"startTime,omitempty" db:"start_time" example:"10:00:00"` // Wall-clock, HH:MM:SS
	EndTime    *string    `json:"endTime,omitempty" db:"end_time" example:"11:00:00"`     // Wall-clock, HH:MM:SS
	ValidFrom  *time.Time `json:"validFrom,omitempty" db:"valid_from"`                    // Inclusive calendar date (nullable)
	ValidUntil *time.Time `json:"validUntil,omitempty" db:"valid_until"`                  // Inclusive calendar date (nullable)

	// Relations (populated when needed)
	Class *Class `json:"class,omitempty"`
}
