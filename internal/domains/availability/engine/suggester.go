package engine

import (
	"svim/internal/domains/availability/model"
	"time"
)

type SuggestParams struct {
	Base            time.Time
	SearchDays      int
	Count           int
	DurationMinutes int
	// Staff is tried in order at every grid position; the first free member takes the slot.
	Staff    []model.Staff
	Bookings []model.Booking
	Hours    model.BusinessHours
}

// Suggest walks forward from Base, one calendar day at a time for SearchDays days, skipping excluded
// weekdays. Each day is scanned on a fixed grid of Hours.StepMinutes starting at opening time (on the
// first day, at Base rounded up onto that grid). A position yields at most one slot. The result is
// time ordered and never longer than Count.
//
// The grid is anchored at Hours.Open, not at wall-clock multiples of the step: with an opening
// time of 09:15 and a 30 minute step, positions are 09:15, 09:45 and so on.
func Suggest(p SuggestParams) []model.Slot {
	slots := []model.Slot{}

	if p.Count <= 0 || p.SearchDays <= 0 || p.DurationMinutes <= 0 || len(p.Staff) == 0 || p.Hours.Validate() != nil {
		return slots
	}

	byStaff := make(map[int64][]model.Booking, len(p.Staff))
	for _, booking := range p.Bookings {
		byStaff[booking.StaffID] = append(byStaff[booking.StaffID], booking)
	}

	base := p.Hours.In(p.Base)
	step := time.Duration(p.Hours.StepMinutes) * time.Minute
	duration := time.Duration(p.DurationMinutes) * time.Minute
	year, month, day := base.Date()

	for offset := range p.SearchDays {
		date := time.Date(year, month, day+offset, 0, 0, 0, 0, base.Location())
		if p.Hours.IsExcluded(date.Weekday()) {
			continue
		}

		open, closing := p.Hours.Window(date)

		cursor := open
		if offset == 0 {
			cursor = ceilToGrid(base, open, step)
		}

		for ; !cursor.Add(duration).After(closing); cursor = cursor.Add(step) {
			end := cursor.Add(duration)

			for _, staff := range p.Staff {
				if IsSlotFree(cursor, end, byStaff[staff.ID], staff.ID) {
					slots = append(slots, model.Slot{StaffID: staff.ID, StaffName: staff.Name, Start: cursor, End: end})

					break
				}
			}

			if len(slots) >= p.Count {
				return slots
			}
		}
	}

	return slots
}

// ceilToGrid returns the first grid point (anchor + k*step, k >= 0) not before t.
func ceilToGrid(t, anchor time.Time, step time.Duration) time.Time {
	if !t.After(anchor) {
		return anchor
	}

	elapsed := t.Sub(anchor)
	steps := elapsed / step

	if elapsed%step != 0 {
		steps++
	}

	return anchor.Add(steps * step)
}
