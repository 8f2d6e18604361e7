package availability

import (
	"net/http"
	"svim/infras/otel"
	"svim/internal/domains/availability/model/dto"
	"svim/internal/domains/availability/service"
	"svim/shared"
	"svim/shared/constant"
	"svim/shared/validator"
	"svim/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/availability", handler.CheckAvailability)

	router.Get("/services", handler.GetServices)
	router.Get("/bookings", handler.GetBookings)

	router.Route("/staff", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetStaff)
		routerGroup.Get("/{id}/services", handler.GetStaffServices)
	})
}

// CheckAvailability resolves a service, its eligible staff and the open slots.
// @Summary Check availability
// @Description Resolve a service by term or id, check the desired start and suggest alternative slots.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.CheckAvailabilityRequest true "Availability query"
// @Success 200 {object} response.Data[dto.CheckAvailabilityResponse] "Lookup outcome"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/availability [post]
// @Security ApiKeyAuth
func (handler *Handler) CheckAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	var req dto.CheckAvailabilityRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Check(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(writer, err)

		return
	}

	scope.SetAttribute("availability.status", res.Status)
	scope.AddEvent("Availability checked")

	response.WithJSON(writer, http.StatusOK, res)
}

// GetServices lists the catalog.
// @Summary List services
// @Description List catalog services filtered by folded name and category.
// @Tags Availability
// @Produce json
// @Param name query string false "Name fragment"
// @Param category query string false "Category fragment"
// @Param visible_only query boolean false "Only services visible to customers"
// @Param include_price query boolean false "Include prices"
// @Success 200 {object} response.Data[[]dto.ServiceResponse] "Services"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/services [get]
// @Security ApiKeyAuth
func (handler *Handler) GetServices(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	query := request.URL.Query()
	req := dto.ListServicesRequest{
		Name:         query.Get(constant.RequestParamName),
		Category:     query.Get(constant.RequestParamCategory),
		VisibleOnly:  shared.ConvertStringToBool(query.Get(constant.RequestParamVisibleOnly)),
		IncludePrice: includePrice(request),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	services, err := handler.service.ListServices(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list services")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, services)
}

// GetStaff lists the roster.
// @Summary List staff
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Data[[]dto.StaffResponse] "Staff"
// @Failure 502 {object} response.Error
// @Router /v1/staff [get]
// @Security ApiKeyAuth
func (handler *Handler) GetStaff(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaff")
	defer scope.End()

	staff, err := handler.service.ListStaff(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list staff")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, staff)
}

// GetStaffServices lists the services one staff member performs.
// @Summary List services of a staff member
// @Tags Availability
// @Produce json
// @Param id path string true "Staff ID"
// @Param include_price query boolean false "Include prices"
// @Success 200 {object} response.Data[[]dto.ServiceResponse] "Services"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/staff/{id}/services [get]
// @Security ApiKeyAuth
func (handler *Handler) GetStaffServices(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaffServices")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,identifier"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("invalid staff id")

		response.WithError(writer, err)

		return
	}

	services, err := handler.service.ListStaffServices(ctx, id, includePrice(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to list staff services")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, services)
}

// GetBookings lists active and cancelled bookings in a range.
// @Summary List bookings
// @Tags Availability
// @Produce json
// @Param from query string false "Range start, RFC3339"
// @Param to query string false "Range end, RFC3339"
// @Success 200 {object} response.Data[[]dto.BookingResponse] "Bookings"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings [get]
// @Security ApiKeyAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	req := dto.ListBookingsRequest{
		From: request.URL.Query().Get(constant.RequestParamFrom),
		To:   request.URL.Query().Get(constant.RequestParamTo),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	bookings, err := handler.service.ListBookings(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

func includePrice(request *http.Request) bool {
	withPrice := shared.ConvertStringToBool(request.URL.Query().Get(constant.RequestParamWithPrice))

	return withPrice != nil && *withPrice
}
