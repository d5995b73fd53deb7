package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskops/admin-console/internal/api/middleware"
	"github.com/taskops/admin-console/internal/core/console"
	"github.com/taskops/admin-console/internal/core/domain"
	"github.com/taskops/admin-console/internal/core/forms"
)

type directoryStub struct {
	accounts    []domain.Account
	deleteCalls int
}

func (d *directoryStub) List(ctx context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, len(d.accounts))
	copy(out, d.accounts)
	return out, nil
}

func (d *directoryStub) Create(ctx context.Context, a domain.Account) error {
	a.ID = uint(len(d.accounts) + 1)
	d.accounts = append(d.accounts, a)
	return nil
}

func (d *directoryStub) Update(ctx context.Context, id uint, a domain.Account) error {
	for i := range d.accounts {
		if d.accounts[i].ID == id {
			a.ID = id
			d.accounts[i] = a
			return nil
		}
	}
	return domain.ErrRemote
}

func (d *directoryStub) Delete(ctx context.Context, id uint) error {
	d.deleteCalls++
	for i := range d.accounts {
		if d.accounts[i].ID == id {
			d.accounts = append(d.accounts[:i], d.accounts[i+1:]...)
			return nil
		}
	}
	return domain.ErrRemote
}

type trackerStub struct{}

func (trackerStub) List(ctx context.Context) ([]domain.WorkItem, error)          { return nil, nil }
func (trackerStub) Create(ctx context.Context, w domain.WorkItem) error          { return nil }
func (trackerStub) Update(ctx context.Context, id uint, w domain.WorkItem) error { return nil }
func (trackerStub) Delete(ctx context.Context, id uint) error                    { return nil }

func newAccountState(role string, dir *directoryStub) *console.State {
	sess := domain.Session{ID: "sid-1", AccountID: 1, Username: "tester", Role: role}
	return console.NewState(sess, console.Deps{
		Directory:  dir,
		Tracker:    trackerStub{},
		SuccessTTL: time.Minute,
		ErrorTTL:   time.Minute,
		Log:        zerolog.Nop(),
	})
}

func newStateContext(t *testing.T, state *console.State, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newJSONContext(t, method, target, body)
	c.Set(middleware.StateKey, state)
	return c, rec
}

func TestAccountList_ServesCache(t *testing.T) {
	dir := &directoryStub{accounts: []domain.Account{{ID: 1, Username: "admin"}, {ID: 2, Username: "bob"}}}
	state := newAccountState(domain.RoleAdmin, dir)
	state.Refresh()
	h := NewAccountHandler()

	c, rec := newStateContext(t, state, http.MethodGet, "/console/accounts", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}

	var resp accountListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Users) != 2 || resp.Loading {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// Serving the cache must not hit the remote again.
	dir.accounts = append(dir.accounts, domain.Account{ID: 3})
	c, rec = newStateContext(t, state, http.MethodGet, "/console/accounts", "")
	_ = h.List(c)
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Users) != 2 {
		t.Fatalf("list must serve the cache, got %d users", len(resp.Users))
	}
}

func TestAccountCreate_ForbiddenForNonAdmin(t *testing.T) {
	dir := &directoryStub{}
	state := newAccountState(domain.RoleUser, dir)
	h := NewAccountHandler()

	c, _ := newStateContext(t, state, http.MethodPost, "/console/accounts", `{"username": "x", "email": "x@example.com"}`)
	if err := h.Create(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(dir.accounts) != 0 {
		t.Fatalf("forbidden create must not reach the remote")
	}
}

func TestAccountCreate_DefaultsRole(t *testing.T) {
	dir := &directoryStub{}
	state := newAccountState(domain.RoleAdmin, dir)
	h := NewAccountHandler()

	c, rec := newStateContext(t, state, http.MethodPost, "/console/accounts", `{"username": "carol", "email": "c@example.com"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if dir.accounts[0].Role != domain.RoleUser {
		t.Fatalf("omitted role should default to %q, got %q", domain.RoleUser, dir.accounts[0].Role)
	}
}

func TestAccountDelete_ConfirmationGate(t *testing.T) {
	dir := &directoryStub{accounts: []domain.Account{{ID: 5, Username: "bob"}}}
	state := newAccountState(domain.RoleAdmin, dir)
	state.Refresh()
	h := NewAccountHandler()

	c, _ := newStateContext(t, state, http.MethodDelete, "/console/accounts/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.Delete(c); !errors.Is(err, domain.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if dir.deleteCalls != 0 {
		t.Fatalf("unconfirmed delete must not reach the remote")
	}

	c, rec := newStateContext(t, state, http.MethodDelete, "/console/accounts/5?confirm=true", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.Delete(c); err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(dir.accounts) != 0 {
		t.Fatalf("account not deleted")
	}
}

func TestAccountForm_OpenEditAndCancel(t *testing.T) {
	dir := &directoryStub{accounts: []domain.Account{{ID: 2, Username: "bob", Email: "b@example.com", Role: domain.RoleUser}}}
	state := newAccountState(domain.RoleAdmin, dir)
	state.Refresh()
	h := NewAccountHandler()

	c, rec := newStateContext(t, state, http.MethodPost, "/console/accounts/2/edit", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := h.OpenEditForm(c); err != nil {
		t.Fatalf("open edit: %v", err)
	}

	var resp accountFormResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Mode != forms.ModeEditing || resp.EditingID != 2 || resp.Draft.Username != "bob" {
		t.Fatalf("unexpected form state: %+v", resp)
	}

	c, rec = newStateContext(t, state, http.MethodPost, "/console/accounts/form/cancel", "")
	if err := h.CancelForm(c); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if state.AccountForm.Mode() != forms.ModeClosed {
		t.Fatalf("form should be closed after cancel")
	}
}

func TestAccountUpdate_InvalidID(t *testing.T) {
	state := newAccountState(domain.RoleAdmin, &directoryStub{})
	h := NewAccountHandler()

	c, _ := newStateContext(t, state, http.MethodPut, "/console/accounts/abc", `{"username": "x", "email": "x@example.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	err := h.Update(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
