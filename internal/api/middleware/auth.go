package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tanit/user-management/internal/api/metrics"
	"github.com/tanit/user-management/internal/core/ports"
)

// AllowList is the set of request paths exempt from authentication. Entries
// ending in "*" match by prefix, everything else matches exactly.
type AllowList struct {
	exact    map[string]struct{}
	prefixes []string
}

func NewAllowList(paths ...string) AllowList {
	a := AllowList{exact: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		if strings.HasSuffix(p, "*") {
			a.prefixes = append(a.prefixes, strings.TrimSuffix(p, "*"))
			continue
		}
		a.exact[p] = struct{}{}
	}
	return a
}

func (a AllowList) Contains(path string) bool {
	if _, ok := a.exact[path]; ok {
		return true
	}
	for _, prefix := range a.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Authenticate extracts and verifies a bearer token, attaching the token's
// subject to the request context as "principal". It never terminates the
// chain itself: allow-listed paths, pre-flight requests, and requests with a
// missing or invalid token all pass through anonymously, and the final
// accept/reject decision belongs to RequireIdentity.
func Authenticate(tokens ports.TokenService, allow AllowList) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method == http.MethodOptions || allow.Contains(req.URL.Path) {
				return next(c)
			}

			authHeader := req.Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			if !tokens.Validate(parts[1]) {
				metrics.TokenValidationsTotal.WithLabelValues("rejected").Inc()
				return next(c)
			}
			metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()

			subject, err := tokens.Subject(parts[1])
			if err != nil {
				return next(c)
			}

			c.Set("principal", subject)
			return next(c)
		}
	}
}
