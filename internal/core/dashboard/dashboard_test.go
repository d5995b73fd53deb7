package dashboard

import (
	"testing"

	"github.com/taskops/admin-console/internal/core/domain"
)

func TestSummarize_Empty(t *testing.T) {
	o := Summarize(nil, nil)
	if o.TotalAccounts != 0 || o.TotalWorkItems != 0 {
		t.Fatalf("empty collections should produce zero totals: %+v", o)
	}
	// Every enumerated bucket is present even when empty.
	for _, role := range []string{domain.RoleAdmin, domain.RoleManager, domain.RoleUser} {
		if _, ok := o.AccountsByRole[role]; !ok {
			t.Fatalf("missing role bucket %q", role)
		}
	}
	for _, status := range []string{domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted} {
		if _, ok := o.WorkItemsByState[status]; !ok {
			t.Fatalf("missing status bucket %q", status)
		}
	}
}

func TestSummarize_PartitionsSumToTotals(t *testing.T) {
	accounts := []domain.Account{
		{ID: 1, Role: domain.RoleAdmin},
		{ID: 2, Role: domain.RoleManager},
		{ID: 3, Role: domain.RoleUser},
		{ID: 4, Role: domain.RoleUser},
	}
	items := []domain.WorkItem{
		{ID: 1, Status: domain.StatusPending},
		{ID: 2, Status: domain.StatusInProgress},
		{ID: 3, Status: domain.StatusInProgress},
		{ID: 4, Status: domain.StatusCompleted},
		{ID: 5, Status: domain.StatusCompleted},
	}

	o := Summarize(accounts, items)

	if o.TotalAccounts != len(accounts) || o.TotalWorkItems != len(items) {
		t.Fatalf("totals must equal collection cardinality: %+v", o)
	}

	roleSum := 0
	for _, n := range o.AccountsByRole {
		roleSum += n
	}
	if roleSum != o.TotalAccounts {
		t.Fatalf("role partition sums to %d, want %d", roleSum, o.TotalAccounts)
	}

	statusSum := 0
	for _, n := range o.WorkItemsByState {
		statusSum += n
	}
	if statusSum != o.TotalWorkItems {
		t.Fatalf("status partition sums to %d, want %d", statusSum, o.TotalWorkItems)
	}

	if o.AccountsByRole[domain.RoleUser] != 2 || o.WorkItemsByState[domain.StatusCompleted] != 2 {
		t.Fatalf("unexpected buckets: %+v", o)
	}
}

func TestSummarize_UnknownValuesGetTheirOwnBucket(t *testing.T) {
	o := Summarize(
		[]domain.Account{{ID: 1, Role: "intern"}},
		[]domain.WorkItem{{ID: 1, Status: "blocked"}},
	)

	if o.AccountsByRole["intern"] != 1 {
		t.Fatalf("unknown role dropped: %+v", o.AccountsByRole)
	}
	if o.WorkItemsByState["blocked"] != 1 {
		t.Fatalf("unknown status dropped: %+v", o.WorkItemsByState)
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	accounts := []domain.Account{{ID: 1, Role: domain.RoleAdmin}}
	items := []domain.WorkItem{{ID: 1, Status: domain.StatusPending}}

	first := Summarize(accounts, items)
	second := Summarize(accounts, items)

	if first.TotalAccounts != second.TotalAccounts ||
		first.AccountsByRole[domain.RoleAdmin] != second.AccountsByRole[domain.RoleAdmin] ||
		first.WorkItemsByState[domain.StatusPending] != second.WorkItemsByState[domain.StatusPending] {
		t.Fatalf("repeated reads over identical inputs must agree: %+v vs %+v", first, second)
	}
}
