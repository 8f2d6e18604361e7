package http_test

import (
	"net/http"
	"net/http/httptest"
	"svim/config"
	"svim/infras/otel/mocks"
	"svim/internal/domains/availability/model/dto"
	serviceMocks "svim/internal/domains/availability/mocks"
	"svim/internal/handlers/availability"
	"svim/shared/constant"
	"svim/shared/metrics"
	transport "svim/transport/http"
	"svim/transport/http/middleware"
	"svim/transport/http/router"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newServer(t *testing.T) (*transport.HTTP, *serviceMocks.MockAvailability) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "svim-test"
	cfg.App.APIKey = "s3cret"
	cfg.Metrics.Enable = true
	cfg.Metrics.Path = "/metrics"

	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockAvailability(ctrl)
	ot := mocks.NewOtel()
	m := metrics.New(cfg)

	r := router.New(router.DomainHandlers{
		Availability: availability.New(svc, ot),
	})

	server := transport.New(cfg, r, middleware.NewAppMiddleware(ot, cfg, nil, m), middleware.NewAuthMiddleware(ot, cfg), m)

	return server, svc
}

func get(server http.Handler, target, apiKey string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, target, nil)
	if apiKey != "" {
		request.Header.Set(constant.RequestHeaderAPIKey, apiKey)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	return recorder
}

func TestHealth(t *testing.T) {
	server, _ := newServer(t)

	recorder := get(server, "/healthz", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"message":"OK"}`, recorder.Body.String())
	assert.Equal(t, transport.ServerStateReady, server.State())
	assert.NotEmpty(t, recorder.Header().Get(constant.RequestHeaderRequestID))
}

func TestMetricsEndpointIsOpen(t *testing.T) {
	server, _ := newServer(t)

	get(server, "/healthz", "")
	recorder := get(server, "/metrics", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `svim_http_requests_total{app="svim-test",method="GET",route="/healthz",status="200"} 1`)
}

func TestVersionedRoutesRequireAPIKey(t *testing.T) {
	server, svc := newServer(t)

	assert.Equal(t, http.StatusUnauthorized, get(server, "/v1/staff", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(server, "/v1/staff", "guess").Code)

	svc.EXPECT().ListStaff(gomock.Any()).Return([]dto.StaffResponse{{ID: 3, Name: "Ana"}}, nil)

	recorder := get(server, "/v1/staff", "s3cret")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":[{"id":3,"name":"Ana"}]}`, recorder.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	server, _ := newServer(t)

	recorder := get(server, "/v2/staff", "s3cret")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, recorder.Body.String())
}
