package response

import (
	"encoding/json"
	"net/http"
	"svim/shared/constant"
	"svim/shared/failure"
	"svim/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	messageNotFound         = "route not found"
	messageMethodNotAllowed = "method not allowed"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

// WithJSON wraps the payload in a data envelope
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError answers with the failure code carried by err. Anything unclassified is a 500 and
// its message is not exposed.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", code).Msg("request failed")

		if code == http.StatusInternalServerError {
			errMsg = http.StatusText(code)
		}
	}

	write(writer, code, Error{Error: &errMsg})
}

// WithNotFound is the router fallback for unknown routes.
func WithNotFound(writer http.ResponseWriter, _ *http.Request) {
	WithError(writer, failure.NotFound(messageNotFound))
}

// WithMethodNotAllowed is the router fallback for known routes hit with the wrong method.
func WithMethodNotAllowed(writer http.ResponseWriter, _ *http.Request) {
	msg := messageMethodNotAllowed
	write(writer, http.StatusMethodNotAllowed, Error{Error: &msg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
