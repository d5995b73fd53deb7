// Package console composes the per-operator pieces: the two resource stores,
// the two form controllers, the notification slots, and the active tab. One
// State exists per established session and everything in it dies with the
// session.
package console

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskops/admin-console/internal/core/dashboard"
	"github.com/taskops/admin-console/internal/core/domain"
	"github.com/taskops/admin-console/internal/core/forms"
	"github.com/taskops/admin-console/internal/core/notify"
	"github.com/taskops/admin-console/internal/core/ports"
	"github.com/taskops/admin-console/internal/core/store"
)

// Deps carries the collaborators shared by all sessions.
type Deps struct {
	Directory  ports.AccountDirectory
	Tracker    ports.WorkItemTracker
	SuccessTTL time.Duration
	ErrorTTL   time.Duration
	Log        zerolog.Logger
}

// State is one operator's console. All remote calls run under the session
// context, which Close cancels — a fetch still in flight at logout cannot
// repopulate the cleared caches.
type State struct {
	Accounts     *store.Store[domain.Account]
	WorkItems    *store.Store[domain.WorkItem]
	AccountForm  *forms.Controller[domain.Account]
	WorkItemForm *forms.Controller[domain.WorkItem]
	Notes        *notify.Center

	session domain.Session
	log     zerolog.Logger

	mu     sync.Mutex
	tab    string
	ctx    context.Context
	cancel context.CancelFunc
}

// NewState builds the console for an established session. Collections start
// empty; the caller triggers the first synchronisation.
func NewState(sess domain.Session, deps Deps) *State {
	ctx, cancel := context.WithCancel(context.Background())
	notes := notify.New(deps.SuccessTTL, deps.ErrorTTL)
	log := deps.Log.With().Str("session", sess.ID).Str("username", sess.Username).Logger()

	return &State{
		Accounts:  store.New(deps.Directory, notes, store.Labels{Singular: "user", Plural: "users"}, log),
		WorkItems: store.New(deps.Tracker, notes, store.Labels{Singular: "task", Plural: "tasks"}, log),
		AccountForm: forms.New(domain.Account{
			Role: domain.RoleUser,
		}),
		WorkItemForm: forms.New(domain.WorkItem{
			Status:    domain.StatusPending,
			Priority:  domain.PriorityMedium,
			ProjectID: 1,
		}),
		Notes:   notes,
		session: sess,
		log:     log,
		tab:     domain.TabDashboard,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Session returns the acting identity.
func (s *State) Session() domain.Session {
	return s.session
}

// Context is the session-scoped context all remote calls run under.
func (s *State) Context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// ActiveTab returns the currently selected tab.
func (s *State) ActiveTab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// SelectTab switches the active tab and re-synchronises both collections.
// Synchronisation failures surface as notifications, not as an error here;
// the tab switch itself only fails on an unknown tab name.
func (s *State) SelectTab(tab string) error {
	if !domain.ValidTab(tab) {
		return domain.ErrNotFound
	}
	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()

	s.Refresh()
	return nil
}

// Refresh re-lists both collections under the session context.
func (s *State) Refresh() {
	ctx := s.Context()
	_ = s.Accounts.List(ctx)
	_ = s.WorkItems.List(ctx)
}

// Loading reports whether any fetch is in flight for this session.
func (s *State) Loading() bool {
	return s.Accounts.Loading() || s.WorkItems.Loading()
}

// Overview recomputes the dashboard from the current caches.
func (s *State) Overview() dashboard.Overview {
	return dashboard.Summarize(s.Accounts.Snapshot(), s.WorkItems.Snapshot())
}

// Close tears the console down at logout: cancels in-flight work, empties
// both caches, discards open drafts, silences notifications, and parks the
// tab back on the dashboard.
func (s *State) Close() {
	s.mu.Lock()
	s.cancel()
	s.tab = domain.TabDashboard
	s.mu.Unlock()

	s.Accounts.Clear()
	s.WorkItems.Clear()
	s.AccountForm.Cancel()
	s.WorkItemForm.Cancel()
	s.Notes.Reset()
	s.log.Info().Msg("console session closed")
}

// ── Account operations (admin only) ──────────────────────────────────────────

func (s *State) OpenAccountCreate() error {
	if !s.session.CanManageAccounts() {
		return domain.ErrForbidden
	}
	s.AccountForm.OpenCreate()
	return nil
}

func (s *State) OpenAccountEdit(id uint) error {
	if !s.session.CanManageAccounts() {
		return domain.ErrForbidden
	}
	account, ok := s.Accounts.Find(id)
	if !ok {
		return domain.ErrNotFound
	}
	s.AccountForm.OpenEdit(account)
	return nil
}

func (s *State) SetAccountDraft(draft domain.Account) error {
	if !s.session.CanManageAccounts() {
		return domain.ErrForbidden
	}
	return s.AccountForm.SetDraft(draft)
}

func (s *State) CreateAccount(account domain.Account) error {
	if !s.session.CanManageAccounts() {
		return domain.ErrForbidden
	}
	if err := s.Accounts.Create(s.Context(), account); err != nil {
		return err
	}
	s.AccountForm.Complete()
	return nil
}

func (s *State) UpdateAccount(id uint, account domain.Account) error {
	if !s.session.CanManageAccounts() {
		return domain.ErrForbidden
	}
	account.ID = id
	if err := s.Accounts.Update(s.Context(), id, account); err != nil {
		return err
	}
	s.AccountForm.Complete()
	return nil
}

// DeleteAccount requires the confirmed flag: a declined confirmation aborts
// before any request is issued, with no notification.
func (s *State) DeleteAccount(id uint, confirmed bool) error {
	if !s.session.CanManageAccounts() {
		return domain.ErrForbidden
	}
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	return s.Accounts.Delete(s.Context(), id)
}

// ── Work item operations (all roles) ─────────────────────────────────────────

func (s *State) OpenWorkItemCreate() {
	s.WorkItemForm.OpenCreate()
}

func (s *State) OpenWorkItemEdit(id uint) error {
	item, ok := s.WorkItems.Find(id)
	if !ok {
		return domain.ErrNotFound
	}
	s.WorkItemForm.OpenEdit(item)
	return nil
}

func (s *State) SetWorkItemDraft(draft domain.WorkItem) error {
	return s.WorkItemForm.SetDraft(draft)
}

// CreateWorkItem stamps the acting identity as creator. The assignee is
// honoured only for sessions allowed to assign; everyone else — and any
// unassigned draft — falls back to self-assignment.
func (s *State) CreateWorkItem(item domain.WorkItem) error {
	item.CreatedBy = s.session.AccountID
	if !s.session.CanAssign() || item.AssignedTo == 0 {
		item.AssignedTo = s.session.AccountID
	}
	if err := s.WorkItems.Create(s.Context(), item); err != nil {
		return err
	}
	s.WorkItemForm.Complete()
	return nil
}

// UpdateWorkItem keeps the existing assignee for sessions that may not
// assign; the selector is never exposed to them.
func (s *State) UpdateWorkItem(id uint, item domain.WorkItem) error {
	if !s.session.CanAssign() {
		if current, ok := s.WorkItems.Find(id); ok {
			item.AssignedTo = current.AssignedTo
		}
	}
	item.ID = id
	if err := s.WorkItems.Update(s.Context(), id, item); err != nil {
		return err
	}
	s.WorkItemForm.Complete()
	return nil
}

func (s *State) DeleteWorkItem(id uint, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	return s.WorkItems.Delete(s.Context(), id)
}
