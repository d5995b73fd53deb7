package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskops/admin-console/internal/core/domain"
	"github.com/taskops/admin-console/internal/core/forms"
)

// AccountHandler exposes the account collection and its form controller.
// Mutating routes sit behind admin RBAC in the router; the console state
// re-checks the role so the gate holds even if routing changes.
type AccountHandler struct{}

func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

type accountRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" validate:"omitempty,oneof=admin manager user"`
}

func (r accountRequest) toDomain() domain.Account {
	role := r.Role
	if role == "" {
		role = domain.RoleUser
	}
	return domain.Account{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      role,
	}
}

type accountListResponse struct {
	Users   []domain.Account `json:"users"`
	Loading bool             `json:"loading"`
}

type accountFormResponse struct {
	Mode      forms.Mode     `json:"mode"`
	EditingID uint           `json:"editing_id,omitempty"`
	Draft     domain.Account `json:"draft"`
}

// List returns the cached account collection without touching the remote
// service.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  accountListResponse
// @Router       /console/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountListResponse{
		Users:   state.Accounts.Snapshot(),
		Loading: state.Accounts.Loading(),
	})
}

// Refresh re-lists the account collection from the remote service. On
// failure the previous cache is returned unchanged alongside a 502; the
// error notification is already in place.
//
// @Summary      Refresh accounts
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  accountListResponse
// @Failure      502  {object}  map[string]string
// @Router       /console/accounts/refresh [post]
func (h *AccountHandler) Refresh(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	if err := state.Accounts.List(state.Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountListResponse{
		Users:   state.Accounts.Snapshot(),
		Loading: state.Accounts.Loading(),
	})
}

// Create submits a new account and closes the creation form on success.
//
// @Summary      Create account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      accountRequest  true  "Account draft"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /console/accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}

	var req accountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := state.CreateAccount(req.toDomain()); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "user created"})
}

// Update replaces the full account record.
//
// @Summary      Update account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Account ID"
// @Param        body  body      accountRequest  true  "Replacement record"
// @Success      200   {object}  map[string]string
// @Router       /console/accounts/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req accountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := state.UpdateAccount(id, req.toDomain()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user updated"})
}

// Delete removes an account. Requires ?confirm=true; without it nothing is
// sent to the remote service and no notification is pushed.
//
// @Summary      Delete account
// @Tags         accounts
// @Produce      json
// @Param        id       path   int     true   "Account ID"
// @Param        confirm  query  bool    false  "Explicit confirmation"
// @Success      204
// @Failure      428  {object}  map[string]string
// @Router       /console/accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := state.DeleteAccount(id, confirmed(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// OpenCreateForm moves the account form to Creating with a blank draft.
func (h *AccountHandler) OpenCreateForm(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	if err := state.OpenAccountCreate(); err != nil {
		return err
	}
	return h.Form(c)
}

// OpenEditForm moves the account form to Editing with a copy of the cached
// entity as the draft.
func (h *AccountHandler) OpenEditForm(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := state.OpenAccountEdit(id); err != nil {
		return err
	}
	return h.Form(c)
}

// Form returns the form controller's current mode and draft.
func (h *AccountHandler) Form(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	mode, editID, draft := state.AccountForm.Snapshot()
	return c.JSON(http.StatusOK, accountFormResponse{Mode: mode, EditingID: editID, Draft: draft})
}

// SetDraft replaces the scratch buffer while a form is open.
func (h *AccountHandler) SetDraft(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}

	var draft domain.Account
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := state.SetAccountDraft(draft); err != nil {
		return err
	}
	return h.Form(c)
}

// CancelForm discards the draft and closes the form.
func (h *AccountHandler) CancelForm(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	state.AccountForm.Cancel()
	return c.NoContent(http.StatusNoContent)
}
