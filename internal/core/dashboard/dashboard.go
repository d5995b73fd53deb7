// Package dashboard derives counts and breakdowns from the cached
// collections. Pure functions only; every read recomputes from the slices it
// is handed and no state is kept here.
package dashboard

import "github.com/taskops/admin-console/internal/core/domain"

// Overview is the dashboard payload: totals per collection plus the role
// distribution over accounts and the status distribution over work items.
type Overview struct {
	TotalAccounts    int            `json:"total_accounts"`
	TotalWorkItems   int            `json:"total_work_items"`
	AccountsByRole   map[string]int `json:"accounts_by_role"`
	WorkItemsByState map[string]int `json:"work_items_by_status"`
}

// Summarize computes the Overview for the given collections. Partition maps
// always carry every enumerated key, so their values sum to the totals even
// when a bucket is empty; values outside the enumerations land in their own
// bucket rather than being dropped.
func Summarize(accounts []domain.Account, items []domain.WorkItem) Overview {
	o := Overview{
		TotalAccounts:  len(accounts),
		TotalWorkItems: len(items),
		AccountsByRole: map[string]int{
			domain.RoleAdmin:   0,
			domain.RoleManager: 0,
			domain.RoleUser:    0,
		},
		WorkItemsByState: map[string]int{
			domain.StatusPending:    0,
			domain.StatusInProgress: 0,
			domain.StatusCompleted:  0,
		},
	}

	for _, a := range accounts {
		o.AccountsByRole[a.Role]++
	}
	for _, w := range items {
		o.WorkItemsByState[w.Status]++
	}
	return o
}
