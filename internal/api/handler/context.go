package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskops/admin-console/internal/api/middleware"
	"github.com/taskops/admin-console/internal/core/console"
)

// ctxState extracts the console state injected by the Session middleware.
// Its presence proves the middleware ran; a handler reached without it is a
// wiring error surfaced as 401.
func ctxState(c echo.Context) (*console.State, error) {
	state, ok := c.Get(middleware.StateKey).(*console.State)
	if !ok || state == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing console session")
	}
	return state, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// confirmed reports whether the request carries the explicit confirmation
// flag for destructive actions.
func confirmed(c echo.Context) bool {
	return c.QueryParam("confirm") == "true"
}
