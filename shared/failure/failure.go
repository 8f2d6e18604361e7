package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	cause error
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the error the failure was built from, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

func wrap(code int, err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    code,
		Message: err.Error(),
		cause:   err,
	}
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	return wrap(http.StatusBadRequest, err)
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// InvalidArgument rejects caller input before any upstream call is made.
func InvalidArgument(err error) error {
	return wrap(http.StatusBadRequest, err)
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	return wrap(http.StatusInternalServerError, err)
}

// BadGateway reports a failed call to an upstream collaborator.
func BadGateway(err error) error {
	return wrap(http.StatusBadGateway, err)
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// TooManyRequests returns a new Failure with code for throttled callers.
func TooManyRequests(msg string) error {
	return &Failure{
		Code:    http.StatusTooManyRequests,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
