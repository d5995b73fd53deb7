package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskops/admin-console/internal/core/domain"
)

// ConsoleHandler serves the session-scoped console chrome: active tab,
// loading flag, notifications, capability flags, and the dashboard.
type ConsoleHandler struct{}

func NewConsoleHandler() *ConsoleHandler {
	return &ConsoleHandler{}
}

type capabilities struct {
	CanManageAccounts bool `json:"can_manage_accounts"`
	CanAssign         bool `json:"can_assign"`
}

type consoleResponse struct {
	Session       domain.Session        `json:"session"`
	ActiveTab     string                `json:"active_tab"`
	Loading       bool                  `json:"loading"`
	Capabilities  capabilities          `json:"capabilities"`
	Notifications []domain.Notification `json:"notifications"`
	AccountCount  int                   `json:"account_count"`
	WorkItemCount int                   `json:"work_item_count"`
}

type tabRequest struct {
	Tab string `json:"tab" validate:"required,oneof=dashboard users tasks"`
}

// State returns the console view for the acting session.
//
// @Summary      Console state
// @Tags         console
// @Produce      json
// @Success      200  {object}  consoleResponse
// @Router       /console [get]
func (h *ConsoleHandler) State(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}

	sess := state.Session()
	return c.JSON(http.StatusOK, consoleResponse{
		Session:   sess,
		ActiveTab: state.ActiveTab(),
		Loading:   state.Loading(),
		Capabilities: capabilities{
			CanManageAccounts: sess.CanManageAccounts(),
			CanAssign:         sess.CanAssign(),
		},
		Notifications: state.Notes.Snapshot(),
		AccountCount:  state.Accounts.Len(),
		WorkItemCount: state.WorkItems.Len(),
	})
}

// SelectTab switches the active tab and re-synchronises both collections.
// Synchronisation failures surface as notifications; the switch succeeds
// regardless.
//
// @Summary      Switch tab
// @Tags         console
// @Accept       json
// @Produce      json
// @Param        body  body      tabRequest  true  "Target tab"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /console/tab [put]
func (h *ConsoleHandler) SelectTab(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}

	var req tabRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := state.SelectTab(req.Tab); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"active_tab": state.ActiveTab()})
}

// Dashboard recomputes counts and breakdowns from the cached collections.
//
// @Summary      Dashboard overview
// @Tags         console
// @Produce      json
// @Success      200  {object}  dashboard.Overview
// @Router       /console/dashboard [get]
func (h *ConsoleHandler) Dashboard(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state.Overview())
}

// Notifications returns the currently visible transient messages.
//
// @Summary      Active notifications
// @Tags         console
// @Produce      json
// @Success      200  {array}  domain.Notification
// @Router       /console/notifications [get]
func (h *ConsoleHandler) Notifications(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state.Notes.Snapshot())
}
