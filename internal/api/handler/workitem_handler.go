package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskops/admin-console/internal/core/domain"
	"github.com/taskops/admin-console/internal/core/forms"
)

// WorkItemHandler exposes the work item collection and its form controller.
// Unlike accounts, every authenticated role may create, edit and delete work
// items; only assignee selection is tier-gated, and that is resolved in the
// console state.
type WorkItemHandler struct{}

func NewWorkItemHandler() *WorkItemHandler {
	return &WorkItemHandler{}
}

type workItemRequest struct {
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description"`
	Status         string    `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority       string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedTo     uint      `json:"assigned_to"`
	ProjectID      uint      `json:"project_id"`
	DueDate        time.Time `json:"due_date"`
	EstimatedHours float64   `json:"estimated_hours"`
	ActualHours    float64   `json:"actual_hours"`
}

func (r workItemRequest) toDomain() domain.WorkItem {
	status := r.Status
	if status == "" {
		status = domain.StatusPending
	}
	priority := r.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	projectID := r.ProjectID
	if projectID == 0 {
		projectID = 1
	}
	return domain.WorkItem{
		Title:          r.Title,
		Description:    r.Description,
		Status:         status,
		Priority:       priority,
		AssignedTo:     r.AssignedTo,
		ProjectID:      projectID,
		DueDate:        r.DueDate,
		EstimatedHours: r.EstimatedHours,
		ActualHours:    r.ActualHours,
	}
}

type workItemListResponse struct {
	Tasks   []domain.WorkItem `json:"tasks"`
	Loading bool              `json:"loading"`
}

type workItemFormResponse struct {
	Mode      forms.Mode      `json:"mode"`
	EditingID uint            `json:"editing_id,omitempty"`
	Draft     domain.WorkItem `json:"draft"`
}

// List returns the cached work item collection.
//
// @Summary      List work items
// @Tags         workitems
// @Produce      json
// @Success      200  {object}  workItemListResponse
// @Router       /console/tasks [get]
func (h *WorkItemHandler) List(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workItemListResponse{
		Tasks:   state.WorkItems.Snapshot(),
		Loading: state.WorkItems.Loading(),
	})
}

// Refresh re-lists the work item collection from the remote service.
//
// @Summary      Refresh work items
// @Tags         workitems
// @Produce      json
// @Success      200  {object}  workItemListResponse
// @Failure      502  {object}  map[string]string
// @Router       /console/tasks/refresh [post]
func (h *WorkItemHandler) Refresh(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	if err := state.WorkItems.List(state.Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workItemListResponse{
		Tasks:   state.WorkItems.Snapshot(),
		Loading: state.WorkItems.Loading(),
	})
}

// Create submits a new work item. created_by is stamped from the session and
// the assignee falls back to self-assignment per the session's tier.
//
// @Summary      Create work item
// @Tags         workitems
// @Accept       json
// @Produce      json
// @Param        body  body      workItemRequest  true  "Work item draft"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /console/tasks [post]
func (h *WorkItemHandler) Create(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}

	var req workItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := state.CreateWorkItem(req.toDomain()); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "task created"})
}

// Update replaces the full work item record.
//
// @Summary      Update work item
// @Tags         workitems
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Work item ID"
// @Param        body  body      workItemRequest  true  "Replacement record"
// @Success      200   {object}  map[string]string
// @Router       /console/tasks/{id} [put]
func (h *WorkItemHandler) Update(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req workItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := state.UpdateWorkItem(id, req.toDomain()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "task updated"})
}

// Delete removes a work item behind the same ?confirm=true gate as accounts.
//
// @Summary      Delete work item
// @Tags         workitems
// @Produce      json
// @Param        id       path   int   true   "Work item ID"
// @Param        confirm  query  bool  false  "Explicit confirmation"
// @Success      204
// @Failure      428  {object}  map[string]string
// @Router       /console/tasks/{id} [delete]
func (h *WorkItemHandler) Delete(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := state.DeleteWorkItem(id, confirmed(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// OpenCreateForm moves the work item form to Creating with a blank draft.
func (h *WorkItemHandler) OpenCreateForm(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	state.OpenWorkItemCreate()
	return h.Form(c)
}

// OpenEditForm moves the work item form to Editing.
func (h *WorkItemHandler) OpenEditForm(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := state.OpenWorkItemEdit(id); err != nil {
		return err
	}
	return h.Form(c)
}

// Form returns the form controller's current mode and draft.
func (h *WorkItemHandler) Form(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	mode, editID, draft := state.WorkItemForm.Snapshot()
	return c.JSON(http.StatusOK, workItemFormResponse{Mode: mode, EditingID: editID, Draft: draft})
}

// SetDraft replaces the scratch buffer while a form is open.
func (h *WorkItemHandler) SetDraft(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}

	var draft domain.WorkItem
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := state.SetWorkItemDraft(draft); err != nil {
		return err
	}
	return h.Form(c)
}

// CancelForm discards the draft and closes the form.
func (h *WorkItemHandler) CancelForm(c echo.Context) error {
	state, err := ctxState(c)
	if err != nil {
		return err
	}
	state.WorkItemForm.Cancel()
	return c.NoContent(http.StatusNoContent)
}
