package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireIdentity enforces the authorization rule: allow-listed paths and
// pre-flight requests pass unconditionally, every other request must carry
// the principal attached by Authenticate or is rejected with 401.
func RequireIdentity(allow AllowList) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method == http.MethodOptions || allow.Contains(req.URL.Path) {
				return next(c)
			}

			principal, _ := c.Get("principal").(string)
			if principal == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}
