package middleware

import (
	"crypto/subtle"
	"net/http"
	"svim/config"
	"svim/infras/otel"
	"svim/shared/constant"
	"svim/shared/failure"
	"svim/transport/http/response"
)

// Auth guards the API for service-to-service callers.
type Auth interface {
	APIKey(http.Handler) http.Handler
}

type authImpl struct {
	otel otel.Otel
	cfg  *config.Config
}

func NewAuthMiddleware(otel otel.Otel, cfg *config.Config) Auth {
	return &authImpl{
		otel: otel,
		cfg:  cfg,
	}
}

// APIKey rejects requests whose X-API-Key does not match APP_API_KEY. With no key configured
// every request passes.
func (m *authImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		expected := m.cfg.App.APIKey
		if expected == "" {
			next.ServeHTTP(writer, request)

			return
		}

		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			err := failure.Unauthorized("missing or invalid API key")

			scope.SetAttribute("http.source", "unknown")
			scope.TraceError(err)
			scope.End()

			response.WithError(writer, err)

			return
		}

		scope.SetAttribute("http.source", "internal")
		scope.End()

		next.ServeHTTP(writer, request)
	})
}
