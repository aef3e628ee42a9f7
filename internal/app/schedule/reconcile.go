package schedule

import (
	"time"

	"github.com/tutorhall/tutorhall/internal/app/models"
)

// A (item, date) override slot moves between three states: absent,
// active-with-times and cancelled. The functions below build the full desired
// row for the target state, so writing one is a plain natural-key upsert:
// whatever the slot held before is overwritten, never merged. Rows are never
// deleted; un-suppressing a date is a transition back to active-with-times.

// Retimed returns the override row that pins the occurrence of the given rule
// on the given date to the supplied times. A nil side keeps the rule's own
// time for that side at materialization.
func Retimed(itemID int64, date time.Time, start, end *string) models.ScheduleOverride {
	return models.ScheduleOverride{
		ProgramItemID: itemID,
		Date:          DateOf(date),
		StartTime:     start,
		EndTime:       end,
		Cancelled:     false,
	}
}

// Cancelled returns the override row that suppresses the occurrence of the
// given rule on the given date. Times are cleared: a cancelled slot carries no
// schedule information.
func Cancelled(itemID int64, date time.Time) models.ScheduleOverride {
	return models.ScheduleOverride{
		ProgramItemID: itemID,
		Date:          DateOf(date),
		StartTime:     nil,
		EndTime:       nil,
		Cancelled:     true,
	}
}

// SameDate reports whether two timestamps fall on the same calendar date.
// Relocating an occurrence onto its own date degenerates to a retime; without
// this check the move would write a cancellation and a contradicting
// activation under the same key.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
