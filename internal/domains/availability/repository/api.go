package repository

import (
	"context"
	"svim/infras/catalogapi"
	"svim/internal/domains/availability/model"
	"svim/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type catalogClient interface {
	ListServices(ctx context.Context, query catalogapi.ServiceQuery) ([]catalogapi.Service, error)
	ListStaff(ctx context.Context) ([]catalogapi.Staff, error)
	ListStaffServices(ctx context.Context, staffID int64) ([]catalogapi.Service, error)
	ListBookings(ctx context.Context, from, to time.Time) ([]catalogapi.Booking, error)
}

type apiStore struct {
	client catalogClient
}

// NewAPI reads from the back-office REST api.
func NewAPI(client *catalogapi.Client) Store {
	return &apiStore{client: client}
}

func (s *apiStore) ListServices(ctx context.Context, filter model.ServiceFilter) ([]model.Service, error) {
	items, err := s.client.ListServices(ctx, catalogapi.ServiceQuery{
		Name:        filter.Name,
		Category:    filter.Category,
		VisibleOnly: filter.VisibleOnly,
	})
	if err != nil {
		return nil, err
	}

	return toServices(items), nil
}

func (s *apiStore) ListStaff(ctx context.Context) ([]model.Staff, error) {
	items, err := s.client.ListStaff(ctx)
	if err != nil {
		return nil, err
	}

	staff := make([]model.Staff, 0, len(items))
	for _, item := range items {
		staff = append(staff, model.Staff{ID: item.ID, Name: item.Name, Nickname: item.Nickname})
	}

	return staff, nil
}

func (s *apiStore) ListStaffServices(ctx context.Context, staffID int64) ([]model.Service, error) {
	items, err := s.client.ListStaffServices(ctx, staffID)
	if err != nil {
		return nil, err
	}

	return toServices(items), nil
}

// ListBookings drops entries the agenda cannot place: no staff or an unreadable start.
func (s *apiStore) ListBookings(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	items, err := s.client.ListBookings(ctx, from, to)
	if err != nil {
		return nil, err
	}

	bookings := make([]model.Booking, 0, len(items))

	for _, item := range items {
		if item.Staff == nil {
			continue
		}

		start, err := timezone.ParseInstant(item.StartAt)
		if err != nil {
			log.Warn().Err(err).Int64("bookingID", item.ID).Str("start", item.StartAt).Msg("Skipping booking with unreadable start")

			continue
		}

		booking := model.Booking{
			ID:              item.ID,
			StaffID:         item.Staff.ID,
			StartAt:         start,
			DurationMinutes: int(item.DurationMinutes),
			Status:          item.Status,
		}

		if item.Service != nil {
			booking.ServiceID = item.Service.ID
		}

		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func toServices(items []catalogapi.Service) []model.Service {
	services := make([]model.Service, 0, len(items))

	for _, item := range items {
		services = append(services, model.Service{
			ID:                item.ID,
			Name:              item.Name,
			Description:       item.Description,
			Category:          item.Category,
			DurationMinutes:   int(item.DurationMinutes),
			Price:             item.Price,
			VisibleToCustomer: item.VisibleToCustomer,
		})
	}

	return services
}
