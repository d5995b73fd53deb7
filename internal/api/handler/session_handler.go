package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskops/admin-console/internal/core/console"
	"github.com/taskops/admin-console/internal/core/domain"
)

// SessionService is what the handler needs from the session manager.
type SessionService interface {
	Login(ctx context.Context, username, password string) (string, *console.State, error)
	Register(ctx context.Context, account domain.Account) error
	Logout(state *console.State)
}

type SessionHandler struct {
	sessions SessionService
}

func NewSessionHandler(sessions SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type sessionResponse struct {
	Token   string         `json:"token"`
	Session domain.Session `json:"session"`
}

// Login establishes a console session.
//
// @Summary      Sign in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Operator credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, state, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{Token: token, Session: state.Session()})
}

// Register creates a baseline account through the remote directory. No
// session is established; on success the operator signs in separately.
//
// @Summary      Register a new account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account := domain.Account{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := h.sessions.Register(c.Request().Context(), account); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Registration successful! You can now sign in.",
	})
}

// Logout destroys the session and clears everything scoped to it.
//
// @Summary      Sign out
// @Tags         session
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	h.sessions.Logout(state)
	return c.JSON(http.StatusOK, map[string]string{"message": "You have signed out"})
}
