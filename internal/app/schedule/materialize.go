package schedule

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/tutorhall/tutorhall/internal/app/models"
)

// Occurrence is one concrete calendar entry produced by expanding a weekly
// rule against a date window. Occurrences are never persisted; they are
// recomputed on every read.
type Occurrence struct {
	ProgramItemID int64     `json:"programItemId"`
	ProgramID     int64     `json:"programId"`
	ClassID       int64     `json:"classId"`
	Date          time.Time `json:"date"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	OverrideID    *int64    `json:"overrideId,omitempty"` // Set when an override contributed
}

// Key returns the (item id, date) identity used to correlate a displayed
// occurrence back to its rule without knowing the override id up front.
func (o Occurrence) Key() string {
	return occurrenceKey(o.ProgramItemID, o.Date)
}

// slot is a rule whose weekday and times parsed cleanly.
type slot struct {
	item  *models.ProgramItem
	day   time.Weekday
	start time.Duration
	end   time.Duration
}

// newSlot validates an item's recurrence fields. Items missing a weekday or
// either time are not-yet-configured, not an error; they expand to nothing.
func newSlot(item *models.ProgramItem) (slot, bool) {
	if item.DayOfWeek == nil || item.StartTime == nil || item.EndTime == nil {
		return slot{}, false
	}
	if *item.DayOfWeek < 0 || *item.DayOfWeek > 6 {
		return slot{}, false
	}
	start, err := ParseClock(*item.StartTime)
	if err != nil {
		return slot{}, false
	}
	end, err := ParseClock(*item.EndTime)
	if err != nil {
		return slot{}, false
	}
	return slot{
		item:  item,
		day:   time.Weekday(*item.DayOfWeek),
		start: start,
		end:   end,
	}, true
}

// Materialize expands weekly rules plus their single-date overrides into the
// concrete occurrences visible in the inclusive date window.
//
// Per rule: the rule's validity window is intersected with the display window,
// every matching weekday in the intersection is enumerated, and each date is
// resolved against the override stored under (item, date): a cancelled
// override suppresses the date, a plain override replaces the times. A second
// pass then emits every unconsumed, uncancelled override inside the window:
// those are occurrences relocated onto dates the weekly cycle would never
// produce.
func Materialize(items []*models.ProgramItem, overrides []*models.ScheduleOverride, window DateRange) []Occurrence {
	byKey := make(map[string]*models.ScheduleOverride, len(overrides))
	for _, ov := range overrides {
		byKey[occurrenceKey(ov.ProgramItemID, ov.Date)] = ov
	}

	itemsByID := make(map[int64]*models.ProgramItem, len(items))
	consumed := make(map[int64]bool)

	var out []Occurrence
	for _, item := range items {
		itemsByID[item.ID] = item

		sl, ok := newSlot(item)
		if !ok {
			continue
		}

		for _, date := range sl.expand(window) {
			ov := byKey[occurrenceKey(item.ID, date)]
			switch {
			case ov == nil:
				out = append(out, sl.occurrence(date, nil))
			case ov.Cancelled:
				consumed[ov.ID] = true
			default:
				consumed[ov.ID] = true
				out = append(out, sl.occurrence(date, ov))
			}
		}
	}

	// Overrides not consumed above are relocations: their date is outside the
	// rule's natural cycle (or outside its validity window) but the occurrence
	// still belongs to the rule's class.
	for _, ov := range overrides {
		if consumed[ov.ID] || ov.Cancelled || !window.Contains(ov.Date) {
			continue
		}
		item := itemsByID[ov.ProgramItemID]
		if item == nil {
			continue
		}
		occ, ok := relocated(item, ov)
		if !ok {
			continue
		}
		out = append(out, occ)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ProgramItemID < out[j].ProgramItemID
	})
	return out
}

// expand enumerates the rule's matching dates inside the display window,
// clipped to the rule's own validity bounds. Both bounds are inclusive.
func (s slot) expand(window DateRange) []time.Time {
	from, to := window.From, window.To
	if s.item.ValidFrom != nil {
		if vf := DateOf(*s.item.ValidFrom); vf.After(from) {
			from = vf
		}
	}
	if s.item.ValidUntil != nil {
		if vu := DateOf(*s.item.ValidUntil); vu.Before(to) {
			to = vu
		}
	}
	if from.After(to) {
		return nil
	}

	first := FirstOnOrAfter(from, s.day)
	if first.After(to) {
		return nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Dtstart: first,
		Until:   to,
	})
	if err != nil {
		return nil
	}
	return rule.All()
}

// occurrence combines the rule's date with either its own times or the
// override's, falling back per side when the override leaves one unset.
func (s slot) occurrence(date time.Time, ov *models.ScheduleOverride) Occurrence {
	occ := Occurrence{
		ProgramItemID: s.item.ID,
		ProgramID:     s.item.ProgramID,
		ClassID:       s.item.ClassID,
		Date:          date,
		Start:         date.Add(s.start),
		End:           date.Add(s.end),
	}
	if ov != nil {
		occ.OverrideID = &ov.ID
		if ov.StartTime != nil {
			if d, err := ParseClock(*ov.StartTime); err == nil {
				occ.Start = date.Add(d)
			}
		}
		if ov.EndTime != nil {
			if d, err := ParseClock(*ov.EndTime); err == nil {
				occ.End = date.Add(d)
			}
		}
	}
	return occ
}

// relocated builds the occurrence for an override sitting outside its rule's
// weekly cycle. Each side of the times falls back to the rule's own time; if
// neither the override nor the rule can supply a side, there is nothing
// displayable and the override is skipped.
func relocated(item *models.ProgramItem, ov *models.ScheduleOverride) (Occurrence, bool) {
	date := DateOf(ov.Date)
	occ := Occurrence{
		ProgramItemID: item.ID,
		ProgramID:     item.ProgramID,
		ClassID:       item.ClassID,
		Date:          date,
		OverrideID:    &ov.ID,
	}

	start, ok := clockFor(ov.StartTime, item.StartTime)
	if !ok {
		return Occurrence{}, false
	}
	end, ok := clockFor(ov.EndTime, item.EndTime)
	if !ok {
		return Occurrence{}, false
	}
	occ.Start = date.Add(start)
	occ.End = date.Add(end)
	return occ, true
}

func clockFor(primary, fallback *string) (time.Duration, bool) {
	for _, s := range []*string{primary, fallback} {
		if s == nil {
			continue
		}
		if d, err := ParseClock(*s); err == nil {
			return d, true
		}
	}
	return 0, false
}
