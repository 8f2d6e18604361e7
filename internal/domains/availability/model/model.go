package model

import (
	"errors"
	"slices"
	"strings"
	"time"
)

const (
	TableServices      = "services"
	TableStaff         = "staff"
	TableStaffServices = "staff_services"
	TableBookings      = "bookings"

	EntityService      = "service"
	EntityStaff        = "staff"
	EntityStaffService = "staff_service"
	EntityBooking      = "booking"

	FieldID                = "id"
	FieldName              = "name"
	FieldCategory          = "category"
	FieldVisibleToCustomer = "visible_to_customer"
	FieldStaffID           = "staff_id"
	FieldServiceID         = "service_id"
	FieldStartAt           = "start_at"
	FieldStatus            = "status"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUpstreamFetch   = errors.New("upstream fetch failed")
)

// Service is a bookable offering. Price stays nil unless the caller asked for it.
type Service struct {
	ID                int64    `db:"id"`
	Name              string   `db:"name"`
	Description       string   `db:"description"`
	Category          string   `db:"category"`
	DurationMinutes   int      `db:"duration_minutes"`
	Price             *float64 `db:"price"`
	VisibleToCustomer bool     `db:"visible_to_customer"`
}

// WithoutPrice returns a copy safe to show a customer who did not ask about prices.
func (s Service) WithoutPrice() Service {
	s.Price = nil

	return s
}

type Staff struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Nickname string `db:"nickname"`
}

// StaffService is one row of the staff to service assignment, read through a join on services.
type StaffService struct {
	Service
	StaffID int64 `db:"staff_id" table:"staff_services"`
}

func (StaffService) GetJoinQuery() string {
	return "INNER JOIN staff_services ON staff_services.service_id = services.id"
}

var cancelledStatuses = []string{"cancelled", "canceled", "cancelado", "cancelada", "no_show"}

// CancelledStatuses lists booking statuses that no longer hold their interval.
func CancelledStatuses() []string {
	return slices.Clone(cancelledStatuses)
}

type Booking struct {
	ID              int64     `db:"id"`
	StaffID         int64     `db:"staff_id"`
	ServiceID       int64     `db:"service_id"`
	StartAt         time.Time `db:"start_at"`
	DurationMinutes int       `db:"duration_minutes"`
	Status          string    `db:"status"`
}

// End is the exclusive end of the booking interval.
func (b Booking) End() time.Time {
	return b.StartAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsActive reports whether the booking still occupies its staff member.
func (b Booking) IsActive() bool {
	if b.DurationMinutes <= 0 || b.StartAt.IsZero() {
		return false
	}

	return !slices.Contains(cancelledStatuses, strings.ToLower(strings.TrimSpace(b.Status)))
}

type Slot struct {
	StaffID   int64
	StaffName string
	Start     time.Time
	End       time.Time
}
