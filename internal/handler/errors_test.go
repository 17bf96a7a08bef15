package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/EsmaNErdem/jobly/internal/repository"
	"github.com/EsmaNErdem/jobly/internal/validation"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"no update fields", repository.ErrNoUpdateFields, http.StatusBadRequest},
		{"employee range", repository.ErrEmployeeRange, http.StatusBadRequest},
		{"bad credentials", repository.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not found", &repository.NotFoundError{Entity: "job", Key: "9"}, http.StatusNotFound},
		{"conflict", &repository.ConflictError{Entity: "company", Key: "acme"}, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			if err := writeError(c, tc.err); err != nil {
				t.Fatalf("writeError: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := writeError(c, errors.New("pq: connection reset")); err != nil {
		t.Fatalf("writeError: %v", err)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}

func newBindContext(t *testing.T, body string) echo.Context {
	t.Helper()
	e := echo.New()
	e.Validator = validation.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindStrict_RejectsUnknownFields(t *testing.T) {
	c := newBindContext(t, `{"title":"Engineer","bogus":true}`)
	var req jobUpdateReq
	err := bindStrict(c, &req)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %v", err)
	}
}

func TestBindStrict_ValidationFailure(t *testing.T) {
	c := newBindContext(t, `{"state":"pending"}`)
	var req applicationUpdateReq
	err := bindStrict(c, &req)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid state, got %v", err)
	}
}

func TestBindStrict_EmptyBodyAllowed(t *testing.T) {
	c := newBindContext(t, "")
	var req applyReq
	if err := bindStrict(c, &req); err != nil {
		t.Fatalf("empty body: %v", err)
	}
	if req.State != "" {
		t.Fatalf("unexpected state %q", req.State)
	}
}
