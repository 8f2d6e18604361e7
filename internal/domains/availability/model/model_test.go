package model_test

import (
	"svim/internal/domains/availability/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var brt = time.FixedZone("BRT", -3*60*60)

func TestBooking_IsActive(t *testing.T) {
	start := time.Date(2026, 1, 20, 14, 0, 0, 0, brt)

	tests := []struct {
		name    string
		booking model.Booking
		want    bool
	}{
		{name: "confirmed", booking: model.Booking{StartAt: start, DurationMinutes: 30, Status: "confirmed"}, want: true},
		{name: "no status", booking: model.Booking{StartAt: start, DurationMinutes: 30}, want: true},
		{name: "cancelled", booking: model.Booking{StartAt: start, DurationMinutes: 30, Status: "cancelled"}, want: false},
		{name: "cancelado upper", booking: model.Booking{StartAt: start, DurationMinutes: 30, Status: " CANCELADO "}, want: false},
		{name: "no show", booking: model.Booking{StartAt: start, DurationMinutes: 30, Status: "no_show"}, want: false},
		{name: "zero duration", booking: model.Booking{StartAt: start, Status: "confirmed"}, want: false},
		{name: "missing start", booking: model.Booking{DurationMinutes: 30}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.IsActive())
		})
	}
}

func TestBooking_End(t *testing.T) {
	b := model.Booking{StartAt: time.Date(2026, 1, 20, 14, 0, 0, 0, brt), DurationMinutes: 45}

	assert.Equal(t, time.Date(2026, 1, 20, 14, 45, 0, 0, brt), b.End())
}

func TestService_WithoutPrice(t *testing.T) {
	price := 55.0
	s := model.Service{ID: 1, Name: "corte de cabelo", Price: &price}

	stripped := s.WithoutPrice()

	assert.Nil(t, stripped.Price)
	assert.NotNil(t, s.Price)
}

func TestParseClock(t *testing.T) {
	c, err := model.ParseClock("09:30")

	assert.NoError(t, err)
	assert.Equal(t, model.Clock{Hour: 9, Minute: 30}, c)
	assert.Equal(t, "09:30", c.String())

	_, err = model.ParseClock("9h30")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestBusinessHours(t *testing.T) {
	hours := model.BusinessHours{
		Open:             model.Clock{Hour: 9},
		Close:            model.Clock{Hour: 18},
		StepMinutes:      30,
		ExcludedWeekdays: []time.Weekday{time.Sunday},
		Location:         brt,
	}

	assert.NoError(t, hours.Validate())
	assert.True(t, hours.IsExcluded(time.Sunday))
	assert.False(t, hours.IsExcluded(time.Monday))

	open, closing := hours.Window(time.Date(2026, 1, 20, 14, 7, 0, 0, brt))
	assert.Equal(t, time.Date(2026, 1, 20, 9, 0, 0, 0, brt), open)
	assert.Equal(t, time.Date(2026, 1, 20, 18, 0, 0, 0, brt), closing)

	utc := time.Date(2026, 1, 20, 17, 0, 0, 0, time.UTC)
	assert.Equal(t, 14, hours.In(utc).Hour())
}

func TestBusinessHours_Validate(t *testing.T) {
	tests := []struct {
		name  string
		hours model.BusinessHours
	}{
		{name: "zero step", hours: model.BusinessHours{Open: model.Clock{Hour: 9}, Close: model.Clock{Hour: 18}}},
		{name: "close before open", hours: model.BusinessHours{Open: model.Clock{Hour: 18}, Close: model.Clock{Hour: 9}, StepMinutes: 30}},
		{name: "empty window", hours: model.BusinessHours{Open: model.Clock{Hour: 9}, Close: model.Clock{Hour: 9}, StepMinutes: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.hours.Validate(), model.ErrInvalidArgument)
		})
	}
}

func TestResultOutcomes(t *testing.T) {
	results := map[model.Outcome]model.Result{
		model.OutcomeNoServicesFound: model.NoServicesFound{},
		model.OutcomeAmbiguous:       model.Ambiguous{},
		model.OutcomeNoStaffFound:    model.NoStaffFound{},
		model.OutcomeNoEligibleStaff: model.NoEligibleStaff{},
		model.OutcomeResolved:        model.Resolved{},
	}

	for outcome, result := range results {
		assert.Equal(t, outcome, result.Outcome())
	}
}
