package engine_test

import (
	"svim/internal/domains/availability/engine"
	"svim/internal/domains/availability/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func salonHours() model.BusinessHours {
	return model.BusinessHours{
		Open:             model.Clock{Hour: 9},
		Close:            model.Clock{Hour: 18},
		StepMinutes:      30,
		ExcludedWeekdays: []time.Weekday{time.Sunday},
		Location:         brt,
	}
}

type slotView struct {
	staff      int64
	start, end time.Time
}

func views(slots []model.Slot) []slotView {
	out := make([]slotView, len(slots))
	for i, s := range slots {
		out[i] = slotView{staff: s.StaffID, start: s.Start, end: s.End}
	}

	return out
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name   string
		params engine.SuggestParams
		want   []slotView
	}{
		{
			name: "next free slot after a booking at the requested time",
			params: engine.SuggestParams{
				Base: at(20, 14, 0), SearchDays: 14, Count: 1, DurationMinutes: 30,
				Staff:    roster(10),
				Bookings: []model.Booking{booking(10, at(20, 14, 0), 30)},
				Hours:    salonHours(),
			},
			want: []slotView{{staff: 10, start: at(20, 14, 30), end: at(20, 15, 0)}},
		},
		{
			name: "base rounded up onto the grid",
			params: engine.SuggestParams{
				Base: at(20, 14, 7), SearchDays: 1, Count: 2, DurationMinutes: 30,
				Staff: roster(10), Hours: salonHours(),
			},
			want: []slotView{
				{staff: 10, start: at(20, 14, 30), end: at(20, 15, 0)},
				{staff: 10, start: at(20, 15, 0), end: at(20, 15, 30)},
			},
		},
		{
			name: "before opening starts at open",
			params: engine.SuggestParams{
				Base: at(20, 7, 0), SearchDays: 1, Count: 1, DurationMinutes: 30,
				Staff: roster(10), Hours: salonHours(),
			},
			want: []slotView{{staff: 10, start: at(20, 9, 0), end: at(20, 9, 30)}},
		},
		{
			name: "late base rolls to next day opening",
			params: engine.SuggestParams{
				Base: at(20, 17, 45), SearchDays: 2, Count: 3, DurationMinutes: 30,
				Staff: roster(10), Hours: salonHours(),
			},
			want: []slotView{
				{staff: 10, start: at(21, 9, 0), end: at(21, 9, 30)},
				{staff: 10, start: at(21, 9, 30), end: at(21, 10, 0)},
				{staff: 10, start: at(21, 10, 0), end: at(21, 10, 30)},
			},
		},
		{
			name: "grid advances by step not by duration",
			params: engine.SuggestParams{
				Base: at(20, 9, 0), SearchDays: 1, Count: 3, DurationMinutes: 60,
				Staff: roster(10), Hours: salonHours(),
			},
			want: []slotView{
				{staff: 10, start: at(20, 9, 0), end: at(20, 10, 0)},
				{staff: 10, start: at(20, 9, 30), end: at(20, 10, 30)},
				{staff: 10, start: at(20, 10, 0), end: at(20, 11, 0)},
			},
		},
		{
			name: "slot must end by closing",
			params: engine.SuggestParams{
				Base: at(20, 16, 30), SearchDays: 1, Count: 5, DurationMinutes: 60,
				Staff: roster(10), Hours: salonHours(),
			},
			want: []slotView{
				{staff: 10, start: at(20, 16, 30), end: at(20, 17, 30)},
				{staff: 10, start: at(20, 17, 0), end: at(20, 18, 0)},
			},
		},
		{
			name: "earlier staff in order takes the position",
			params: engine.SuggestParams{
				Base: at(20, 9, 0), SearchDays: 1, Count: 3, DurationMinutes: 30,
				Staff:    roster(20, 10),
				Bookings: []model.Booking{booking(20, at(20, 9, 30), 30)},
				Hours:    salonHours(),
			},
			want: []slotView{
				{staff: 20, start: at(20, 9, 0), end: at(20, 9, 30)},
				{staff: 10, start: at(20, 9, 30), end: at(20, 10, 0)},
				{staff: 20, start: at(20, 10, 0), end: at(20, 10, 30)},
			},
		},
		{
			name: "off the hour opening anchors the grid",
			params: engine.SuggestParams{
				Base: at(20, 10, 0), SearchDays: 1, Count: 2, DurationMinutes: 30,
				Staff: roster(10),
				Hours: model.BusinessHours{
					Open:        model.Clock{Hour: 9, Minute: 15},
					Close:       model.Clock{Hour: 18},
					StepMinutes: 30,
					Location:    brt,
				},
			},
			want: []slotView{
				{staff: 10, start: at(20, 10, 15), end: at(20, 10, 45)},
				{staff: 10, start: at(20, 10, 45), end: at(20, 11, 15)},
			},
		},
		{
			name: "base in another zone is read in salon time",
			params: engine.SuggestParams{
				Base: time.Date(2026, 1, 20, 17, 0, 0, 0, time.UTC), SearchDays: 1, Count: 1, DurationMinutes: 30,
				Staff: roster(10), Hours: salonHours(),
			},
			want: []slotView{{staff: 10, start: at(20, 14, 0), end: at(20, 14, 30)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Suggest(tt.params)

			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].staff, got[i].StaffID)
				assert.True(t, tt.want[i].start.Equal(got[i].Start), "start %d: want %s got %s", i, tt.want[i].start, got[i].Start)
				assert.True(t, tt.want[i].end.Equal(got[i].End), "end %d: want %s got %s", i, tt.want[i].end, got[i].End)
			}
		})
	}
}

func TestSuggest_ExcludedWeekdayContributesNothing(t *testing.T) {
	saturdayEvening := at(24, 17, 30)
	assert.Equal(t, time.Saturday, saturdayEvening.Weekday())

	params := engine.SuggestParams{
		Base: saturdayEvening, SearchDays: 2, Count: 50, DurationMinutes: 30,
		Staff: roster(10), Hours: salonHours(),
	}

	got := engine.Suggest(params)

	assert.Equal(t, []slotView{{staff: 10, start: at(24, 17, 30), end: at(24, 18, 0)}}, views(got))

	params.SearchDays = 3
	got = engine.Suggest(params)

	assert.Len(t, got, 1+18)
	for _, slot := range got {
		assert.NotEqual(t, time.Sunday, slot.Start.Weekday())
	}
	assert.Equal(t, time.Monday, got[1].Start.Weekday())
}

func TestSuggest_NothingToDo(t *testing.T) {
	base := engine.SuggestParams{
		Base: at(20, 9, 0), SearchDays: 1, Count: 1, DurationMinutes: 30,
		Staff: roster(10), Hours: salonHours(),
	}

	tests := []struct {
		name   string
		mutate func(p *engine.SuggestParams)
	}{
		{name: "zero count", mutate: func(p *engine.SuggestParams) { p.Count = 0 }},
		{name: "zero days", mutate: func(p *engine.SuggestParams) { p.SearchDays = 0 }},
		{name: "zero duration", mutate: func(p *engine.SuggestParams) { p.DurationMinutes = 0 }},
		{name: "no staff", mutate: func(p *engine.SuggestParams) { p.Staff = nil }},
		{name: "invalid hours", mutate: func(p *engine.SuggestParams) { p.Hours.StepMinutes = 0 }},
		{name: "longer than the day", mutate: func(p *engine.SuggestParams) { p.DurationMinutes = 10 * 60 }},
		{name: "only day is excluded", mutate: func(p *engine.SuggestParams) { p.Base = at(25, 9, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base
			tt.mutate(&params)

			got := engine.Suggest(params)

			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestSuggest_Properties(t *testing.T) {
	bookings := []model.Booking{
		booking(10, at(20, 9, 0), 90),
		booking(20, at(20, 9, 0), 30),
		booking(20, at(20, 10, 0), 45),
		booking(10, at(20, 11, 15), 30),
		booking(30, at(20, 9, 0), 8*60),
		booking(10, at(21, 9, 0), 9*60),
		booking(20, at(21, 12, 0), 60),
	}
	staff := roster(10, 20, 30)
	hours := salonHours()

	for _, count := range []int{1, 3, 7, 40} {
		params := engine.SuggestParams{
			Base: at(20, 8, 50), SearchDays: 3, Count: count, DurationMinutes: 45,
			Staff: staff, Bookings: bookings, Hours: hours,
		}

		got := engine.Suggest(params)

		assert.LessOrEqual(t, len(got), count)
		assert.Equal(t, got, engine.Suggest(params), "suggest must be deterministic")

		for i, slot := range got {
			open, closing := hours.Window(slot.Start)

			assert.False(t, slot.Start.Before(open), "slot %d starts before opening", i)
			assert.False(t, slot.End.After(closing), "slot %d ends after closing", i)
			assert.Equal(t, 45*time.Minute, slot.End.Sub(slot.Start))
			assert.True(t, engine.IsSlotFree(slot.Start, slot.End, bookings, slot.StaffID), "slot %d is not free", i)

			verdict := engine.CheckRequested(slot.Start, slot.End, bookings, staff, &slot.StaffID)
			assert.True(t, verdict.Available, "slot %d fails the round trip", i)

			if i > 0 {
				assert.True(t, got[i-1].Start.Before(slot.Start), "slots must be strictly time ordered")
			}
		}
	}
}
