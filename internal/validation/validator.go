// Package validation wires go-playground/validator into Echo so handlers
// can declare recognized fields and their constraints on the request DTOs
// themselves. Payload validity is decided here, against the struct tags;
// repositories never re-check it.
package validation

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts a validator.Validate to echo's Validator
// interface.
type RequestValidator struct {
	validate *validator.Validate
}

func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator. Constraint violations surface as a
// 400 with the offending fields listed, matching the client-error contract
// for malformed payloads.
func (v *RequestValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	if invalid, ok := err.(*validator.InvalidValidationError); ok {
		return echo.NewHTTPError(http.StatusInternalServerError, invalid.Error())
	}
	fields := []string{}
	for _, fe := range err.(validator.ValidationErrors) {
		fields = append(fields, fe.Field()+" failed "+fe.Tag())
	}
	return echo.NewHTTPError(http.StatusBadRequest, fields)
}
