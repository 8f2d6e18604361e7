package service

import (
	"context"
	"strings"
	"svim/internal/domains/availability/engine"
	"svim/internal/domains/availability/model"
	"svim/internal/domains/availability/model/dto"
	"svim/shared"
	"svim/shared/constant"

	"github.com/rs/zerolog/log"
)

func (s *serviceImpl) ListServices(ctx context.Context, req dto.ListServicesRequest) (res []dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListServices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := model.ServiceFilter{
		Category:    strings.TrimSpace(req.Category),
		VisibleOnly: req.VisibleOnly,
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		filter.Name = engine.NormalizeTerm(name)
	}

	services, err := s.store.ListServices(ctx, filter)
	if err != nil {
		return nil, s.upstream(operationListServices, err)
	}

	return dto.FromServices(services, req.IncludePrice), nil
}

func (s *serviceImpl) ListStaff(ctx context.Context) (res []dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListStaff")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	staff, err := s.store.ListStaff(ctx)
	if err != nil {
		return nil, s.upstream(operationListStaff, err)
	}

	return dto.FromStaff(staff), nil
}

func (s *serviceImpl) ListStaffServices(ctx context.Context, staffID string, includePrice bool) (res []dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListStaffServices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id, ok := shared.ParseID(staffID)
	if !ok {
		return nil, invalidArgument("staff id must be a positive integer, got %q", staffID)
	}

	services, err := s.store.ListStaffServices(ctx, id)
	if err != nil {
		return nil, s.upstream(operationListStaffServices, err)
	}

	return dto.FromServices(services, includePrice), nil
}

func (s *serviceImpl) ListBookings(ctx context.Context, req dto.ListBookingsRequest) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, to, err := req.Window(s.hours.In(s.clock()), s.cfg.Availability.DefaultSearchDays)
	if err != nil {
		return nil, err
	}

	if limit := s.cfg.Availability.MaxSearchDays; limit > 0 && to.After(from.AddDate(0, 0, limit)) {
		log.Warn().Time("from", from).Time("to", to).Int("maxDays", limit).Msg("Booking range wider than the search limit")

		return nil, invalidArgument("booking range may span at most %d days", limit)
	}

	bookings, err := s.store.ListBookings(ctx, from, to)
	if err != nil {
		return nil, s.upstream(operationListBookings, err)
	}

	return dto.FromBookings(bookings, s.hours.Location), nil
}
