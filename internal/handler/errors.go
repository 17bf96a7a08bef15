package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/EsmaNErdem/jobly/internal/repository"
)

// writeError maps repository errors onto the HTTP error contract:
// empty/invalid input 400, bad credentials 401, missing entity 404,
// uniqueness violation 409. Anything unrecognized is fatal to the request:
// the cause is logged server-side and the client sees a generic 500,
// untransformed by any retry or recovery.
func writeError(c echo.Context, err error) error {
	var (
		notFound *repository.NotFoundError
		conflict *repository.ConflictError
	)
	switch {
	case errors.Is(err, repository.ErrNoUpdateFields),
		errors.Is(err, repository.ErrEmployeeRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound.Error()})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": conflict.Error()})
	default:
		c.Logger().Errorf("request failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// bindStrict decodes the JSON body into v, rejecting any field outside the
// target struct, then runs the struct's validation tags. Unknown fields are
// a client error: the request DTOs enumerate exactly the recognized fields
// per operation. A missing body decodes as the zero value; validation tags
// decide whether that is acceptable.
func bindStrict(c echo.Context, v any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body: "+err.Error())
	}
	return c.Validate(v)
}
