package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"svim/config"
	"svim/infras/otel"
	"svim/internal/domains/availability/engine"
	"svim/internal/domains/availability/model"
	"svim/internal/domains/availability/model/dto"
	"svim/internal/domains/availability/repository"
	"svim/shared/constant"
	"svim/shared/failure"
	"svim/shared/metrics"
	"svim/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	operationListServices      = "list_services"
	operationListStaff         = "list_staff"
	operationListStaffServices = "list_staff_services"
	operationListBookings      = "list_bookings"

	outcomeFailed = "failed"
)

// Clock supplies the base instant when the caller gives no desired start.
type Clock func() time.Time

func NewClock() Clock {
	return timezone.Now
}

type Availability interface {
	// Resolve runs the full lookup pipeline. Business outcomes are results, never errors.
	Resolve(ctx context.Context, query model.Query) (model.Result, error)
	Check(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.CheckAvailabilityResponse, error)
	ListServices(ctx context.Context, req dto.ListServicesRequest) ([]dto.ServiceResponse, error)
	ListStaff(ctx context.Context) ([]dto.StaffResponse, error)
	ListStaffServices(ctx context.Context, staffID string, includePrice bool) ([]dto.ServiceResponse, error)
	ListBookings(ctx context.Context, req dto.ListBookingsRequest) ([]dto.BookingResponse, error)
}

type serviceImpl struct {
	store       repository.Store
	cfg         *config.Config
	otel        otel.Otel
	metrics     *metrics.Metrics
	clock       Clock
	hours       model.BusinessHours
	eligibility *engine.EligibilityFilter
}

func New(store repository.Store, cfg *config.Config, otel otel.Otel, metrics *metrics.Metrics, clock Clock) (Availability, error) {
	hours, err := BusinessHoursFromConfig(cfg, timezone.GetLocation())
	if err != nil {
		return nil, fmt.Errorf("invalid business hours: %w", err)
	}

	if clock == nil {
		clock = NewClock()
	}

	return &serviceImpl{
		store:       store,
		cfg:         cfg,
		otel:        otel,
		metrics:     metrics,
		clock:       clock,
		hours:       hours,
		eligibility: engine.NewEligibilityFilter(store, cfg.Availability.EligibilityConcurrency),
	}, nil
}

func (s *serviceImpl) Check(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.CheckAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Check")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query, err := req.ToQuery()
	if err != nil {
		return res, err
	}

	result, err := s.Resolve(ctx, query)
	if err != nil {
		return res, err
	}

	res.FromResult(result, s.hours.Location)

	return res, nil
}

func (s *serviceImpl) Resolve(ctx context.Context, query model.Query) (result model.Result, err error) {
	started := time.Now()

	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		outcome := outcomeFailed
		if result != nil {
			outcome = string(result.Outcome())
		}

		scope.SetAttribute("outcome", outcome)
		s.metrics.ObserveCheck(outcome, time.Since(started))
	}()

	query, err = s.withDefaults(query)
	if err != nil {
		return nil, err
	}

	services, err := s.store.ListServices(ctx, s.catalogFilter(query))
	if err != nil {
		return nil, s.upstream(operationListServices, err)
	}

	if len(services) == 0 {
		log.Info().Str("term", query.ServiceTerm).Msg("No services matched the lookup")

		return model.NoServicesFound{
			Term:    query.ServiceTerm,
			Message: "No service matches this request. Ask the customer to describe the service differently.",
		}, nil
	}

	resolution := engine.ResolveService(services, query.ServiceID, query.ServiceTerm, s.cfg.Availability.MaxCandidates)
	if !resolution.Resolved() {
		log.Info().Str("term", query.ServiceTerm).Int("candidates", len(resolution.Candidates)).Msg("Service lookup is ambiguous")

		return model.Ambiguous{
			Term:       query.ServiceTerm,
			Candidates: s.priced(resolution.Candidates, query.IncludePrice),
			Message:    "The service could not be identified with confidence. Ask the customer to pick one of the candidates.",
		}, nil
	}

	service := *resolution.Service
	if !query.IncludePrice {
		service = service.WithoutPrice()
	}

	scope.SetAttribute("service_id", service.ID)
	log.Info().Int64("serviceId", service.ID).Str("match", string(resolution.Match)).Msg("Service resolved")

	roster, err := s.store.ListStaff(ctx)
	if err != nil {
		return nil, s.upstream(operationListStaff, err)
	}

	if len(roster) == 0 {
		log.Warn().Int64("serviceId", service.ID).Msg("Staff roster is empty")

		return model.NoStaffFound{Service: service, Message: "No staff members are registered."}, nil
	}

	eligibility, err := s.eligibility.Filter(ctx, roster, service.ID, query.StaffID)
	if err != nil {
		return nil, s.upstream(operationListStaffServices, err)
	}

	log.Info().Int64("serviceId", service.ID).Int("eligible", len(eligibility.Staff)).Str("requestedStaff", string(eligibility.Requested)).Msg("Eligible staff filtered")

	if len(eligibility.Staff) == 0 {
		return model.NoEligibleStaff{
			Service: service,
			Message: fmt.Sprintf("No staff member currently performs %s.", service.Name),
		}, nil
	}

	return s.schedule(ctx, query, service, eligibility)
}

// schedule fetches the agenda for the search window, checks the desired start and suggests alternatives.
func (s *serviceImpl) schedule(ctx context.Context, query model.Query, service model.Service, eligibility engine.Eligibility) (model.Result, error) {
	duration := service.DurationMinutes
	if duration <= 0 {
		duration = s.cfg.Availability.DefaultDurationMinutes
	}

	base := s.clock()
	if query.DesiredStart != nil {
		base = *query.DesiredStart
	}

	base = s.hours.In(base)
	from := timezone.StartOfDay(base)
	to := from.AddDate(0, 0, max(1, query.SearchDays))

	bookings, err := s.store.ListBookings(ctx, from, to)
	if err != nil {
		return nil, s.upstream(operationListBookings, err)
	}

	active := make([]model.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.IsActive() {
			active = append(active, booking)
		}
	}

	// A requested staff member who cannot do the service no longer narrows the search.
	explicit := query.StaffID
	if eligibility.Requested != model.RequestedStaffEligible {
		explicit = nil
	}

	resolved := model.Resolved{
		Service:        service,
		EligibleStaff:  eligibility.Staff[:min(len(eligibility.Staff), s.maxEligibleStaff())],
		RequestedStaff: eligibility.Requested,
		Suggestions:    []model.Slot{},
		Meta: model.Meta{
			DurationMinutes:  duration,
			SearchDays:       query.SearchDays,
			StepMinutes:      s.hours.StepMinutes,
			OpenTime:         s.hours.Open.String(),
			CloseTime:        s.hours.Close.String(),
			ExcludedWeekdays: s.hours.ExcludedWeekdays,
		},
		Message: requestedStaffMessage(eligibility.Requested, query.StaffID),
	}

	if query.DesiredStart != nil {
		start := base
		end := start.Add(time.Duration(duration) * time.Minute)
		verdict := engine.CheckRequested(start, end, active, eligibility.Staff, explicit)

		resolved.Requested = &model.RequestedCheck{
			Start:     start,
			End:       end,
			Available: verdict.Available,
			StaffID:   verdict.StaffID,
			Explicit:  verdict.Explicit,
		}
	}

	if resolved.Requested == nil || !resolved.Requested.Available {
		resolved.Suggestions = engine.Suggest(engine.SuggestParams{
			Base:            base,
			SearchDays:      query.SearchDays,
			Count:           query.SuggestionCount,
			DurationMinutes: duration,
			Staff:           eligibility.Staff,
			Bookings:        active,
			Hours:           s.hours,
		})

		s.metrics.ObserveSuggestions(len(resolved.Suggestions))
	}

	log.Info().
		Int64("serviceId", service.ID).
		Int("bookings", len(active)).
		Bool("checkedRequested", resolved.Requested != nil).
		Int("suggestions", len(resolved.Suggestions)).
		Msg("Availability resolved")

	return resolved, nil
}

func requestedStaffMessage(status model.RequestedStaff, staffID *int64) string {
	if staffID == nil {
		return ""
	}

	switch status {
	case model.RequestedStaffIneligible:
		return fmt.Sprintf("Staff member %d does not perform this service. Tell the customer and offer the eligible staff instead.", *staffID)
	case model.RequestedStaffNotFound:
		return fmt.Sprintf("Staff member %d was not found. Tell the customer and offer the eligible staff instead.", *staffID)
	default:
		return ""
	}
}

// withDefaults fills zero values from configuration and rejects out of range numbers.
func (s *serviceImpl) withDefaults(query model.Query) (model.Query, error) {
	limits := s.cfg.Availability

	if query.ServiceID != nil && *query.ServiceID <= 0 {
		return query, invalidArgument("service id must be a positive integer, got %d", *query.ServiceID)
	}

	if query.StaffID != nil && *query.StaffID <= 0 {
		return query, invalidArgument("staff id must be a positive integer, got %d", *query.StaffID)
	}

	if query.SearchDays == 0 {
		query.SearchDays = limits.DefaultSearchDays
	}

	if query.SearchDays < 0 || (limits.MaxSearchDays > 0 && query.SearchDays > limits.MaxSearchDays) {
		return query, invalidArgument("search days must be between 1 and %d, got %d", limits.MaxSearchDays, query.SearchDays)
	}

	if query.SuggestionCount == 0 {
		query.SuggestionCount = limits.DefaultSuggestionCount
	}

	if query.SuggestionCount < 0 || (limits.MaxSuggestionCount > 0 && query.SuggestionCount > limits.MaxSuggestionCount) {
		return query, invalidArgument("suggestion count must be between 1 and %d, got %d", limits.MaxSuggestionCount, query.SuggestionCount)
	}

	return query, nil
}

// catalogFilter pre-filters by the normalized term unless the service is addressed by id.
func (s *serviceImpl) catalogFilter(query model.Query) model.ServiceFilter {
	visibleOnly := query.VisibleOnly
	filter := model.ServiceFilter{VisibleOnly: &visibleOnly}

	if query.ServiceID == nil && query.ServiceTerm != "" {
		filter.Name = engine.NormalizeTerm(query.ServiceTerm)
	}

	return filter
}

func (s *serviceImpl) priced(services []model.Service, includePrice bool) []model.Service {
	if includePrice {
		return services
	}

	out := make([]model.Service, len(services))
	for i, service := range services {
		out[i] = service.WithoutPrice()
	}

	return out
}

func (s *serviceImpl) maxEligibleStaff() int {
	if s.cfg.Availability.MaxEligibleStaff <= 0 {
		return engine.DefaultMaxCandidates
	}

	return s.cfg.Availability.MaxEligibleStaff
}

// upstream records a store failure and turns it into a bad gateway failure.
func (s *serviceImpl) upstream(operation string, err error) error {
	log.Error().Err(err).Str("operation", operation).Msg("Catalog store call failed")
	s.metrics.StoreFailure(operation)

	return failure.BadGateway(fmt.Errorf("%w: %s: %w", model.ErrUpstreamFetch, operation, err))
}

func invalidArgument(format string, args ...any) error {
	return failure.InvalidArgument(fmt.Errorf("%w: "+format, append([]any{model.ErrInvalidArgument}, args...)...))
}

