package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxPrincipal extracts the authenticated identity injected by the
// Authenticate middleware. A non-empty principal proves the gate ran and the
// bearer token verified; its absence on a protected route means the route
// was wired without RequireIdentity — answer 401 rather than serve data.
func ctxPrincipal(c echo.Context) (string, error) {
	principal, _ := c.Get("principal").(string)
	if principal == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return principal, nil
}
