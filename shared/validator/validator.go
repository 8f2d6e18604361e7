package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"svim/shared/failure"
	"svim/shared/timezone"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// stringValue reads fields declared as string or as a named string type.
func stringValue(field val.FieldLevel) (string, bool) {
	if field.Field().Kind() != reflect.String {
		return "", false
	}

	return field.Field().String(), true
}

// registerInstantValidation accepts RFC3339 timestamps, with or without an explicit offset.
func registerInstantValidation(field val.FieldLevel) bool {
	str, ok := stringValue(field)
	if !ok {
		return false
	}

	_, err := timezone.ParseInstant(str)

	return err == nil
}

// registerClockValidation accepts HH:MM time-of-day strings.
func registerClockValidation(field val.FieldLevel) bool {
	str, ok := stringValue(field)
	if !ok {
		return false
	}

	_, err := time.Parse("15:04", str)

	return err == nil
}

// registerIdentifierValidation accepts positive integers written as strings.
func registerIdentifierValidation(field val.FieldLevel) bool {
	str, ok := stringValue(field)
	if !ok {
		return false
	}

	id, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64)

	return err == nil && id > 0
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validations := map[string]val.Func{
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
		"instant":    registerInstantValidation,
		"clock":      registerClockValidation,
		"identifier": registerIdentifierValidation,
	}

	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
