package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/EsmaNErdem/jobly/internal/utils"
)

const testSecret = "test-secret"

func runWithAuth(t *testing.T, header string, gates ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/aliya", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/users/:username")
	c.SetParamNames("username")
	c.SetParamValues("aliya")

	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(gates) - 1; i >= 0; i-- {
		h = gates[i](h)
	}
	if err := AuthenticateJWT(testSecret)(h)(c); err != nil {
		t.Fatalf("chain: %v", err)
	}
	return rec
}

func bearer(t *testing.T, p utils.Principal) string {
	t.Helper()
	raw, err := utils.NewAccessToken(testSecret, p, 15)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + raw
}

func TestAuthenticateJWT_SetsPrincipal(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, utils.Principal{Username: "aliya", IsAdmin: true}))
	c := e.NewContext(req, httptest.NewRecorder())

	var got utils.Principal
	var ok bool
	h := AuthenticateJWT(testSecret)(func(c echo.Context) error {
		got, ok = CurrentPrincipal(c)
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !ok || got.Username != "aliya" || !got.IsAdmin {
		t.Fatalf("principal not resolved: %+v %v", got, ok)
	}
}

func TestAuthenticateJWT_InvalidTokenDoesNotFail(t *testing.T) {
	rec := runWithAuth(t, "Bearer garbage")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200 on a public route", rec.Code)
	}
}

func TestRequireLoggedIn(t *testing.T) {
	if rec := runWithAuth(t, "", RequireLoggedIn()); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status %d, want 401", rec.Code)
	}
	header := bearer(t, utils.Principal{Username: "bob"})
	if rec := runWithAuth(t, header, RequireLoggedIn()); rec.Code != http.StatusOK {
		t.Fatalf("logged in: status %d, want 200", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"non-admin", bearer(t, utils.Principal{Username: "bob"}), http.StatusUnauthorized},
		{"admin", bearer(t, utils.Principal{Username: "root", IsAdmin: true}), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := runWithAuth(t, tc.header, RequireAdmin()); rec.Code != tc.want {
				t.Fatalf("status %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestRequireAdminOrSelf(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"other user", bearer(t, utils.Principal{Username: "bob"}), http.StatusUnauthorized},
		{"self", bearer(t, utils.Principal{Username: "aliya"}), http.StatusOK},
		{"admin", bearer(t, utils.Principal{Username: "root", IsAdmin: true}), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := runWithAuth(t, tc.header, RequireAdminOrSelf("username")); rec.Code != tc.want {
				t.Fatalf("status %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
