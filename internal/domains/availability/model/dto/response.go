package dto

import (
	"svim/internal/domains/availability/model"
	"time"
)

type ServiceResponse struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Category          string   `json:"category,omitempty"`
	DurationMinutes   int      `json:"duration_minutes"`
	Price             *float64 `json:"price,omitempty"`
	VisibleToCustomer bool     `json:"visible_to_customer"`
}

func (r *ServiceResponse) FromModel(service model.Service) {
	r.ID = service.ID
	r.Name = service.Name
	r.Description = service.Description
	r.Category = service.Category
	r.DurationMinutes = service.DurationMinutes
	r.Price = service.Price
	r.VisibleToCustomer = service.VisibleToCustomer
}

// FromServices hides prices unless includePrice is set.
func FromServices(services []model.Service, includePrice bool) []ServiceResponse {
	res := make([]ServiceResponse, len(services))

	for i, service := range services {
		if !includePrice {
			service = service.WithoutPrice()
		}

		res[i].FromModel(service)
	}

	return res
}

type StaffResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
}

func FromStaff(staff []model.Staff) []StaffResponse {
	res := make([]StaffResponse, len(staff))

	for i, member := range staff {
		res[i] = StaffResponse{ID: member.ID, Name: member.Name, Nickname: member.Nickname}
	}

	return res
}

type BookingResponse struct {
	ID              int64  `json:"id"`
	StaffID         int64  `json:"staff_id"`
	ServiceID       int64  `json:"service_id,omitempty"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status,omitempty"`
}

func FromBookings(bookings []model.Booking, loc *time.Location) []BookingResponse {
	res := make([]BookingResponse, len(bookings))

	for i, booking := range bookings {
		res[i] = BookingResponse{
			ID:              booking.ID,
			StaffID:         booking.StaffID,
			ServiceID:       booking.ServiceID,
			Start:           formatInstant(booking.StartAt, loc),
			End:             formatInstant(booking.End(), loc),
			DurationMinutes: booking.DurationMinutes,
			Status:          booking.Status,
		}
	}

	return res
}

type SlotResponse struct {
	StaffID   int64  `json:"staff_id"`
	StaffName string `json:"staff_name,omitempty"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

type RequestedResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
	// StaffID is nil when no staff member is free at the requested time.
	StaffID  *int64 `json:"staff_id"`
	Explicit bool   `json:"explicit"`
}

type MetaResponse struct {
	DurationMinutes  int      `json:"duration_minutes"`
	SearchDays       int      `json:"search_days"`
	StepMinutes      int      `json:"step_minutes"`
	OpenTime         string   `json:"open_time"`
	CloseTime        string   `json:"close_time"`
	ExcludedWeekdays []string `json:"excluded_weekdays"`
}

type ResolvedResponse struct {
	EligibleStaff          []StaffResponse    `json:"eligible_staff"`
	RequestedStaff         string             `json:"requested_staff,omitempty"`
	RequestedStaffEligible *bool              `json:"requested_staff_eligible,omitempty"`
	Requested              *RequestedResponse `json:"requested"`
	Suggestions            []SlotResponse     `json:"suggestions"`
	Meta                   MetaResponse       `json:"meta"`
}

// CheckAvailabilityResponse is discriminated by Status. Resolved lookups carry the embedded ResolvedResponse.
type CheckAvailabilityResponse struct {
	Status     string            `json:"status"`
	Message    string            `json:"message,omitempty"`
	Term       string            `json:"term,omitempty"`
	Service    *ServiceResponse  `json:"service,omitempty"`
	Candidates []ServiceResponse `json:"candidates,omitempty"`
	*ResolvedResponse
}

// FromResult renders a lookup result. Instants are written as RFC3339 in loc.
func (r *CheckAvailabilityResponse) FromResult(result model.Result, loc *time.Location) {
	r.Status = string(result.Outcome())

	switch res := result.(type) {
	case model.NoServicesFound:
		r.Term = res.Term
		r.Message = res.Message
	case model.Ambiguous:
		r.Term = res.Term
		r.Message = res.Message
		r.Candidates = FromServices(res.Candidates, true)
	case model.NoStaffFound:
		r.Message = res.Message
		r.Service = serviceResponse(res.Service)
	case model.NoEligibleStaff:
		r.Message = res.Message
		r.Service = serviceResponse(res.Service)
	case model.Resolved:
		r.Message = res.Message
		r.Service = serviceResponse(res.Service)
		r.ResolvedResponse = resolvedResponse(res, loc)
	}
}

func serviceResponse(service model.Service) *ServiceResponse {
	res := &ServiceResponse{}
	res.FromModel(service)

	return res
}

func resolvedResponse(res model.Resolved, loc *time.Location) *ResolvedResponse {
	out := &ResolvedResponse{
		EligibleStaff:  FromStaff(res.EligibleStaff),
		RequestedStaff: string(res.RequestedStaff),
		Suggestions:    make([]SlotResponse, len(res.Suggestions)),
		Meta: MetaResponse{
			DurationMinutes:  res.Meta.DurationMinutes,
			SearchDays:       res.Meta.SearchDays,
			StepMinutes:      res.Meta.StepMinutes,
			OpenTime:         res.Meta.OpenTime,
			CloseTime:        res.Meta.CloseTime,
			ExcludedWeekdays: make([]string, len(res.Meta.ExcludedWeekdays)),
		},
	}

	if res.RequestedStaff != model.RequestedStaffNone {
		eligible := res.RequestedStaff == model.RequestedStaffEligible
		out.RequestedStaffEligible = &eligible
	}

	if res.Requested != nil {
		out.Requested = &RequestedResponse{
			Start:     formatInstant(res.Requested.Start, loc),
			End:       formatInstant(res.Requested.End, loc),
			Available: res.Requested.Available,
			Explicit:  res.Requested.Explicit,
		}

		if res.Requested.StaffID != 0 {
			staffID := res.Requested.StaffID
			out.Requested.StaffID = &staffID
		}
	}

	for i, slot := range res.Suggestions {
		out.Suggestions[i] = SlotResponse{
			StaffID:   slot.StaffID,
			StaffName: slot.StaffName,
			Start:     formatInstant(slot.Start, loc),
			End:       formatInstant(slot.End, loc),
		}
	}

	for i, day := range res.Meta.ExcludedWeekdays {
		out.Meta.ExcludedWeekdays[i] = day.String()
	}

	return out
}

func formatInstant(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}

	return t.Format(time.RFC3339)
}
