package model

import (
	"fmt"
	"slices"
	"time"
)

// Clock is a time of day without a date or zone.
type Clock struct {
	Hour   int
	Minute int
}

func ParseClock(value string) (Clock, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: time of day %q must be HH:MM", ErrInvalidArgument, value)
	}

	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On places the clock on day's calendar date, in day's location.
func (c Clock) On(day time.Time) time.Time {
	y, m, d := day.Date()

	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, day.Location())
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// BusinessHours is the single daily window slots are offered in.
type BusinessHours struct {
	Open             Clock
	Close            Clock
	StepMinutes      int
	ExcludedWeekdays []time.Weekday
	// Location anchors the window. Nil means the location of the instant being scanned.
	Location *time.Location
}

func (h BusinessHours) Validate() error {
	if h.StepMinutes <= 0 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidArgument, h.StepMinutes)
	}

	if h.Close.minutes() <= h.Open.minutes() {
		return fmt.Errorf("%w: close %s must be after open %s", ErrInvalidArgument, h.Close, h.Open)
	}

	return nil
}

func (h BusinessHours) IsExcluded(day time.Weekday) bool {
	return slices.Contains(h.ExcludedWeekdays, day)
}

// Window returns [open, close) on day's date.
func (h BusinessHours) Window(day time.Time) (time.Time, time.Time) {
	return h.Open.On(day), h.Close.On(day)
}

// In converts t to the window's location.
func (h BusinessHours) In(t time.Time) time.Time {
	if h.Location == nil {
		return t
	}

	return t.In(h.Location)
}
