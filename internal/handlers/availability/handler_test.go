package availability_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"svim/infras/otel/mocks"
	"svim/internal/domains/availability/model/dto"
	serviceMocks "svim/internal/domains/availability/mocks"
	"svim/internal/handlers/availability"
	"svim/shared/failure"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (chi.Router, *serviceMocks.MockAvailability) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockAvailability(ctrl)

	handler := availability.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	return recorder
}

func TestCheckAvailability(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		Check(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req dto.CheckAvailabilityRequest) (dto.CheckAvailabilityResponse, error) {
			assert.Equal(t, "corte", req.ServiceTerm)
			assert.Equal(t, dto.FlexibleID("3"), req.StaffID)
			assert.Equal(t, 2, req.SuggestionCount)

			return dto.CheckAvailabilityResponse{Status: "no_services_found", Term: req.ServiceTerm}, nil
		})

	recorder := serve(router, http.MethodPost, "/availability", `{"service_term":"corte","staff_id":3,"suggestion_count":2}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"no_services_found","term":"corte"}}`, recorder.Body.String())
}

func TestCheckAvailability_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"service_term":`},
		{name: "non numeric staff id", body: `{"staff_id":"abc"}`},
		{name: "bad desired start", body: `{"desired_start":"tomorrow 10am"}`},
		{name: "negative search days", body: `{"search_days":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t)

			recorder := serve(router, http.MethodPost, "/availability", tt.body)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestCheckAvailability_UpstreamFailure(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		Check(gomock.Any(), gomock.Any()).
		Return(dto.CheckAvailabilityResponse{}, failure.BadGateway(errors.New("store unavailable")))

	recorder := serve(router, http.MethodPost, "/availability", `{"service_term":"corte"}`)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.JSONEq(t, `{"error":"store unavailable"}`, recorder.Body.String())
}

func TestGetServices(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		ListServices(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req dto.ListServicesRequest) ([]dto.ServiceResponse, error) {
			assert.Equal(t, "barba", req.Name)
			assert.Equal(t, "homem", req.Category)
			require.NotNil(t, req.VisibleOnly)
			assert.False(t, *req.VisibleOnly)
			assert.True(t, req.IncludePrice)

			return []dto.ServiceResponse{{ID: 1, Name: "Barba"}}, nil
		})

	recorder := serve(router, http.MethodGet, "/services?name=barba&category=homem&visible_only=false&include_price=true", "")

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []dto.ServiceResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, []dto.ServiceResponse{{ID: 1, Name: "Barba"}}, body.Data)
}

func TestGetServices_DefaultsLeaveVisibilityUnset(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		ListServices(gomock.Any(), dto.ListServicesRequest{}).
		Return([]dto.ServiceResponse{}, nil)

	recorder := serve(router, http.MethodGet, "/services", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":[]}`, recorder.Body.String())
}

func TestGetStaff(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().ListStaff(gomock.Any()).Return([]dto.StaffResponse{{ID: 3, Name: "Ana"}}, nil)

	recorder := serve(router, http.MethodGet, "/staff", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"Ana"`)
}

func TestGetStaffServices(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().ListStaffServices(gomock.Any(), "3", false).Return([]dto.ServiceResponse{{ID: 1, Name: "Corte"}}, nil)

	recorder := serve(router, http.MethodGet, "/staff/3/services", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"Corte"`)
}

func TestGetStaffServices_RejectsMalformedID(t *testing.T) {
	router, _ := newRouter(t)

	recorder := serve(router, http.MethodGet, "/staff/ana/services", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetBookings(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		ListBookings(gomock.Any(), dto.ListBookingsRequest{From: "2026-01-20T00:00:00-03:00", To: "2026-01-21T00:00:00-03:00"}).
		Return([]dto.BookingResponse{}, nil)

	recorder := serve(router, http.MethodGet, "/bookings?from=2026-01-20T00:00:00-03:00&to=2026-01-21T00:00:00-03:00", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetBookings_RejectsMalformedRange(t *testing.T) {
	router, _ := newRouter(t)

	recorder := serve(router, http.MethodGet, "/bookings?from=yesterday", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
