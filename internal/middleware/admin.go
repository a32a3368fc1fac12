package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const adminTokenHeader = "X-Admin-Token"

// AdminGuard protects administrative endpoints with a shared token carried in
// the X-Admin-Token header. With no token configured the admin surface is
// disabled entirely rather than left open.
func AdminGuard(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return echo.NewHTTPError(http.StatusForbidden, "admin endpoints are disabled")
			}
			got := c.Request().Header.Get(adminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid admin token")
			}
			return next(c)
		}
	}
}
