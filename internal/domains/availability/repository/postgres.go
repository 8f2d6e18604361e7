package repository

import (
	"context"
	"strings"
	"svim/infras/otel"
	"svim/infras/postgres"
	"svim/internal/domains/availability/model"
	"svim/shared"
	"svim/shared/dto"
	gRepo "svim/shared/repository"
	"time"
)

// foldedName lowercases services.name and strips the Portuguese diacritics so it compares with folded terms.
const foldedName = "translate(lower(services.name), 'áàâãäéèêëíìîïóòôõöúùûüç', 'aaaaaeeeeiiiiooooouuuuc')"

var bookingOrder = dto.QueryParams{
	SortBy:  model.TableBookings + "." + model.FieldStartAt,
	SortDir: dto.SortDirAsc,
}

type postgresStore struct {
	services      gRepo.Repository[model.Service]
	staff         gRepo.Repository[model.Staff]
	staffServices gRepo.Repository[model.StaffService]
	bookings      gRepo.Repository[model.Booking]
}

// NewPostgres reads the catalog and agenda tables directly.
func NewPostgres(db *postgres.Connection, otel otel.Otel) Store {
	return &postgresStore{
		services:      gRepo.NewRepository[model.Service](model.EntityService, model.TableServices, model.FieldID, db, otel),
		staff:         gRepo.NewRepository[model.Staff](model.EntityStaff, model.TableStaff, model.FieldID, db, otel),
		staffServices: gRepo.NewRepository[model.StaffService](model.EntityStaffService, model.TableServices, model.FieldID, db, otel),
		bookings:      gRepo.NewRepository[model.Booking](model.EntityBooking, model.TableBookings, model.FieldID, db, otel),
	}
}

func (s *postgresStore) ListServices(ctx context.Context, filter model.ServiceFilter) ([]model.Service, error) {
	return s.services.GetAll(ctx, dto.QueryParams{}, ServiceFilterGroup(filter))
}

func (s *postgresStore) ListStaff(ctx context.Context) ([]model.Staff, error) {
	return s.staff.GetAll(ctx, dto.QueryParams{}, dto.FilterGroup{})
}

func (s *postgresStore) ListStaffServices(ctx context.Context, staffID int64) ([]model.Service, error) {
	rows, err := s.staffServices.GetAll(ctx, dto.QueryParams{}, shared.FilterByID(staffID, model.FieldStaffID, model.TableStaffServices))
	if err != nil {
		return nil, err
	}

	services := make([]model.Service, 0, len(rows))
	for _, row := range rows {
		services = append(services, row.Service)
	}

	return services, nil
}

func (s *postgresStore) ListBookings(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	return s.bookings.GetAll(ctx, bookingOrder, BookingFilterGroup(from, to))
}

// ServiceFilterGroup translates a catalog filter into SQL conditions. Every word of a name
// filter must appear in order, so "design sobrancelha" still finds "Design de Sobrancelha".
func ServiceFilterGroup(filter model.ServiceFilter) dto.FilterGroup {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	if name := strings.Join(strings.Fields(filter.Name), "%"); name != "" {
		group.Filters = append(group.Filters, dto.Filter{
			ArgName:  model.FieldName,
			Field:    foldedName,
			Value:    name,
			Operator: dto.FilterOperatorLike,
		})
	}

	if category := strings.TrimSpace(filter.Category); category != "" {
		group.Filters = append(group.Filters, dto.Filter{
			Field:    model.FieldCategory,
			Value:    category,
			Operator: dto.FilterOperatorLike,
			Table:    model.TableServices,
		})
	}

	if filter.VisibleOnly != nil && *filter.VisibleOnly {
		group.Filters = append(group.Filters, dto.Filter{
			Field:    model.FieldVisibleToCustomer,
			Value:    true,
			Operator: dto.FilterOperatorEq,
			Table:    model.TableServices,
		})
	}

	return group
}

// BookingFilterGroup selects bookings starting in [from, to) that still hold their slot.
func BookingFilterGroup(from, to time.Time) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{ArgName: "start_from", Field: model.FieldStartAt, Value: from, Operator: dto.FilterOperatorGreaterEq, Table: model.TableBookings},
			dto.Filter{ArgName: "start_to", Field: model.FieldStartAt, Value: to, Operator: dto.FilterOperatorLess, Table: model.TableBookings},
			dto.Filter{ArgName: model.FieldStatus, Field: "lower(bookings.status)", Value: model.CancelledStatuses(), Operator: dto.FilterOperatorNotIn},
		},
	}
}

