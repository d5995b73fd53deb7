// Package forms implements the per-entity form-mode state machine: Closed,
// Creating, or Editing one entity. Creating and Editing are mutually
// exclusive within an entity type — opening one while the other is active
// replaces it. Account forms and work item forms are separate instances and
// may be open at the same time.
package forms

import (
	"sync"

	"github.com/taskops/admin-console/internal/core/domain"
)

// Mode is the current state of a form controller.
type Mode string

const (
	ModeClosed   Mode = "closed"
	ModeCreating Mode = "creating"
	ModeEditing  Mode = "editing"
)

// Controller governs one entity type's create/edit form and owns its draft
// buffer. The draft is a shallow copy of an existing entity (editing) or a
// blank template (creating); it is discarded on cancel and on submit success.
type Controller[T domain.Entity] struct {
	mu     sync.Mutex
	mode   Mode
	editID uint
	draft  T
	blank  T
}

// New returns a closed Controller whose creation drafts start from blank.
func New[T domain.Entity](blank T) *Controller[T] {
	return &Controller[T]{mode: ModeClosed, blank: blank}
}

// OpenCreate moves to Creating with a fresh blank draft. An open edit form is
// force-closed.
func (f *Controller[T]) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = ModeCreating
	f.editID = 0
	f.draft = f.blank
}

// OpenEdit moves to Editing with a copy of item as the draft. An open create
// form is force-closed.
func (f *Controller[T]) OpenEdit(item T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = ModeEditing
	f.editID = item.EntityID()
	f.draft = item
}

// SetDraft replaces the draft buffer. Returns domain.ErrFormClosed when no
// form is open.
func (f *Controller[T]) SetDraft(draft T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mode == ModeClosed {
		return domain.ErrFormClosed
	}
	f.draft = draft
	return nil
}

// Snapshot returns the current mode, the entity under edit (zero unless
// editing), and a copy of the draft.
func (f *Controller[T]) Snapshot() (Mode, uint, T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode, f.editID, f.draft
}

// Mode returns the current state.
func (f *Controller[T]) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// EditingID returns the entity under edit, or zero.
func (f *Controller[T]) EditingID() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editID
}

// Cancel discards the draft and closes the form from any state.
func (f *Controller[T]) Cancel() {
	f.close()
}

// Complete closes the form after a successful submit.
func (f *Controller[T]) Complete() {
	f.close()
}

func (f *Controller[T]) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = ModeClosed
	f.editID = 0
	f.draft = f.blank
}
