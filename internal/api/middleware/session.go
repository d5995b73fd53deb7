package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskops/admin-console/internal/core/console"
)

// StateKey is the echo context key the resolved console state is stored
// under.
const StateKey = "console_state"

// Resolver maps a bearer token to a live console session.
type Resolver interface {
	Resolve(token string) (*console.State, error)
}

// Session authenticates the request against the session registry and injects
// the console state and role into the echo context. A token for a session
// that has been logged out resolves to 401 even when the token itself is
// still within its validity window.
func Session(resolver Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			state, err := resolver.Resolve(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired or not found")
			}

			sess := state.Session()
			c.Set(StateKey, state)
			c.Set("role", sess.Role)
			c.Set("username", sess.Username)

			return next(c)
		}
	}
}
