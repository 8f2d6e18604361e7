package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"svim/internal/domains/availability/model"
	"svim/shared"
	"svim/shared/failure"
	"svim/shared/timezone"
	"time"
)

// FlexibleID is an identifier sent either as a JSON number or as a JSON string.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))

	switch {
	case raw == "null":
		*f = ""
	case strings.HasPrefix(raw, `"`):
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return fmt.Errorf("identifier: %w", err)
		}

		*f = FlexibleID(strings.TrimSpace(value))
	default:
		*f = FlexibleID(raw)
	}

	return nil
}

// Int64 returns nil for an absent identifier and an invalid argument failure for a malformed one.
func (f FlexibleID) Int64(field string) (*int64, error) {
	if f == "" {
		return nil, nil
	}

	id, ok := shared.ParseID(string(f))
	if !ok {
		return nil, failure.InvalidArgument(fmt.Errorf("%w: %s must be a positive integer, got %q", model.ErrInvalidArgument, field, string(f)))
	}

	return &id, nil
}

type CheckAvailabilityRequest struct {
	ServiceTerm     string     `json:"service_term"     validate:"omitempty,max=255"`
	ServiceID       FlexibleID `json:"service_id"       validate:"omitempty,identifier"`
	StaffID         FlexibleID `json:"staff_id"         validate:"omitempty,identifier"`
	DesiredStart    string     `json:"desired_start"    validate:"omitempty,instant"`
	VisibleOnly     *bool      `json:"visible_only"     validate:"omitempty"`
	SearchDays      int        `json:"search_days"      validate:"gte=0"`
	SuggestionCount int        `json:"suggestion_count" validate:"gte=0"`
	IncludePrice    bool       `json:"include_price"`
}

// ToQuery converts the request. Visibility defaults to customer visible services only.
func (r *CheckAvailabilityRequest) ToQuery() (model.Query, error) {
	serviceID, err := r.ServiceID.Int64("service_id")
	if err != nil {
		return model.Query{}, err
	}

	staffID, err := r.StaffID.Int64("staff_id")
	if err != nil {
		return model.Query{}, err
	}

	query := model.Query{
		ServiceTerm:     strings.TrimSpace(r.ServiceTerm),
		ServiceID:       serviceID,
		StaffID:         staffID,
		VisibleOnly:     r.VisibleOnly == nil || *r.VisibleOnly,
		SearchDays:      r.SearchDays,
		SuggestionCount: r.SuggestionCount,
		IncludePrice:    r.IncludePrice,
	}

	if r.DesiredStart != "" {
		start, err := timezone.ParseInstant(r.DesiredStart)
		if err != nil {
			return model.Query{}, failure.InvalidArgument(fmt.Errorf("%w: desired_start: %w", model.ErrInvalidArgument, err))
		}

		query.DesiredStart = &start
	}

	return query, nil
}

type ListServicesRequest struct {
	Name         string `validate:"omitempty,max=255"`
	Category     string `validate:"omitempty,max=100"`
	VisibleOnly  *bool
	IncludePrice bool
}

type ListBookingsRequest struct {
	From string `validate:"omitempty,instant"`
	To   string `validate:"omitempty,instant"`
}

// Window parses the range. A missing From means the start of today; a missing To means
// defaultDays after From.
func (r *ListBookingsRequest) Window(now time.Time, defaultDays int) (time.Time, time.Time, error) {
	from := timezone.StartOfDay(now)
	if r.From != "" {
		parsed, err := timezone.ParseInstant(r.From)
		if err != nil {
			return time.Time{}, time.Time{}, failure.InvalidArgument(fmt.Errorf("%w: from: %w", model.ErrInvalidArgument, err))
		}

		from = parsed
	}

	to := from.AddDate(0, 0, max(1, defaultDays))
	if r.To != "" {
		parsed, err := timezone.ParseInstant(r.To)
		if err != nil {
			return time.Time{}, time.Time{}, failure.InvalidArgument(fmt.Errorf("%w: to: %w", model.ErrInvalidArgument, err))
		}

		to = parsed
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, failure.InvalidArgument(fmt.Errorf("%w: to must not be before from", model.ErrInvalidArgument))
	}

	return from, to, nil
}
