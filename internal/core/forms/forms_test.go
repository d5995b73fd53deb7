package forms

import (
	"errors"
	"testing"

	"github.com/taskops/admin-console/internal/core/domain"
)

var blankItem = domain.WorkItem{
	Status:    domain.StatusPending,
	Priority:  domain.PriorityMedium,
	ProjectID: 1,
}

func TestController_StartsClosed(t *testing.T) {
	f := New(blankItem)
	if f.Mode() != ModeClosed {
		t.Fatalf("new controller should be closed, got %s", f.Mode())
	}
}

func TestOpenCreate_UsesBlankTemplate(t *testing.T) {
	f := New(blankItem)
	f.OpenCreate()

	mode, editID, draft := f.Snapshot()
	if mode != ModeCreating || editID != 0 {
		t.Fatalf("unexpected state: %s/%d", mode, editID)
	}
	if draft.Status != domain.StatusPending || draft.Priority != domain.PriorityMedium || draft.ProjectID != 1 {
		t.Fatalf("creation draft should start from the blank template: %+v", draft)
	}
}

func TestOpenEdit_CopiesEntityAsDraft(t *testing.T) {
	f := New(blankItem)
	item := domain.WorkItem{ID: 9, Title: "Ship release", Status: domain.StatusInProgress, Priority: domain.PriorityHigh}
	f.OpenEdit(item)

	mode, editID, draft := f.Snapshot()
	if mode != ModeEditing || editID != 9 {
		t.Fatalf("unexpected state: %s/%d", mode, editID)
	}
	if draft.Title != "Ship release" {
		t.Fatalf("draft should copy the entity: %+v", draft)
	}

	// The draft is a copy; mutating it must not touch the source entity.
	draft.Title = "changed"
	if _, _, again := f.Snapshot(); again.Title != "Ship release" {
		t.Fatalf("snapshot draft aliases controller state")
	}
}

func TestModes_AreMutuallyExclusive(t *testing.T) {
	f := New(blankItem)

	f.OpenEdit(domain.WorkItem{ID: 3, Title: "old"})
	f.OpenCreate()
	if mode, editID, draft := snapshot3(f); mode != ModeCreating || editID != 0 || draft.Title != "" {
		t.Fatalf("create must replace an open edit: %s/%d/%q", mode, editID, draft.Title)
	}

	f.OpenEdit(domain.WorkItem{ID: 4, Title: "next"})
	if mode, editID, _ := snapshot3(f); mode != ModeEditing || editID != 4 {
		t.Fatalf("edit must replace an open create: %s/%d", mode, editID)
	}
}

func snapshot3(f *Controller[domain.WorkItem]) (Mode, uint, domain.WorkItem) {
	return f.Snapshot()
}

func TestSetDraft(t *testing.T) {
	f := New(blankItem)

	if err := f.SetDraft(domain.WorkItem{Title: "x"}); !errors.Is(err, domain.ErrFormClosed) {
		t.Fatalf("draft updates require an open form, got %v", err)
	}

	f.OpenCreate()
	if err := f.SetDraft(domain.WorkItem{Title: "x"}); err != nil {
		t.Fatalf("set draft: %v", err)
	}
	if _, _, draft := f.Snapshot(); draft.Title != "x" {
		t.Fatalf("draft not updated: %+v", draft)
	}
}

func TestCancelAndComplete_DiscardDraft(t *testing.T) {
	f := New(blankItem)

	f.OpenCreate()
	_ = f.SetDraft(domain.WorkItem{Title: "scratch"})
	f.Cancel()
	if f.Mode() != ModeClosed {
		t.Fatalf("cancel should close the form")
	}

	f.OpenCreate()
	if _, _, draft := f.Snapshot(); draft.Title != "" {
		t.Fatalf("cancelled draft leaked into the next form: %+v", draft)
	}

	f.OpenEdit(domain.WorkItem{ID: 2, Title: "t"})
	f.Complete()
	if f.Mode() != ModeClosed || f.EditingID() != 0 {
		t.Fatalf("complete should close the form and forget the edit target")
	}
}
