package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Authorization gates. They assume AuthenticateJWT ran earlier in the
// chain. A failed gate answers 401 rather than 403, so probing a protected
// route does not reveal whether the target resource exists.

// RequireLoggedIn aborts the request when no principal is present.
func RequireLoggedIn() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentPrincipal(c); !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}

// RequireAdmin aborts the request unless the principal carries the admin
// flag.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := CurrentPrincipal(c)
			if !ok || !p.IsAdmin {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}

// RequireAdminOrSelf aborts the request unless the principal is an admin or
// its username equals the route parameter named by param.
func RequireAdminOrSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := CurrentPrincipal(c)
			if !ok || (!p.IsAdmin && p.Username != c.Param(param)) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}
