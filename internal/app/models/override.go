package models

import "time"

// ScheduleOverride is a single-date exception to a ProgramItem's weekly rule.
// At most one row exists per (program_item_id, date); the repository enforces
// this by searching before every write.
//
// Cancelled=true suppresses the occurrence on Date entirely. Cancelled=false
// with replacement times retimes it; Date is allowed to fall on a weekday the
// item would never produce, which is how a single occurrence is moved to
// another day without touching the rule.
type ScheduleOverride struct {
	ID            int64     `json:"id" db:"id"`
	ProgramItemID int64     `json:"programItemId" db:"program_item_id"`
	Date          time.Time `json:"date" db:"date"`                                         // Calendar date (midnight UTC)
	StartTime     *string   `json:"startTime,omitempty" db:"start_time" example:"14:00:00"` // Replacement start (nullable)
	EndTime       *string   `json:"endTime,omitempty" db:"end_time" example:"15:00:00"`     // Replacement end (nullable)
	Cancelled     bool      `json:"cancelled" db:"cancelled"`
}
