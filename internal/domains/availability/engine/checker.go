package engine

import (
	"svim/internal/domains/availability/model"
	"time"
)

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect. Touching ends do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// IsSlotFree reports whether staffID has no booking overlapping [start, end).
// Bookings without a positive duration occupy nothing.
func IsSlotFree(start, end time.Time, bookings []model.Booking, staffID int64) bool {
	for _, booking := range bookings {
		if booking.StaffID != staffID || booking.DurationMinutes <= 0 {
			continue
		}

		if Overlaps(start, end, booking.StartAt, booking.End()) {
			return false
		}
	}

	return true
}

// Verdict answers whether a requested interval can be booked and by whom.
type Verdict struct {
	Available bool
	// StaffID is the explicit staff when one was given, else the first free eligible staff, else 0.
	StaffID  int64
	Explicit bool
}

// CheckRequested tests only explicitStaffID when given. Otherwise eligible staff are tried
// in order and the first free one is reported.
func CheckRequested(start, end time.Time, bookings []model.Booking, eligible []model.Staff, explicitStaffID *int64) Verdict {
	if explicitStaffID != nil {
		return Verdict{
			Available: IsSlotFree(start, end, bookings, *explicitStaffID),
			StaffID:   *explicitStaffID,
			Explicit:  true,
		}
	}

	for _, staff := range eligible {
		if IsSlotFree(start, end, bookings, staff.ID) {
			return Verdict{Available: true, StaffID: staff.ID}
		}
	}

	return Verdict{}
}
