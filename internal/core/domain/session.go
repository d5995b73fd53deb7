package domain

import "time"

// Console tabs. The dashboard is the landing tab after login and the tab a
// session is reset to on logout.
const (
	TabDashboard = "dashboard"
	TabAccounts  = "users"
	TabWorkItems = "tasks"
)

// ValidTab reports whether t names a console tab.
func ValidTab(t string) bool {
	return t == TabDashboard || t == TabAccounts || t == TabWorkItems
}

// Session is the acting operator identity. It exists only in process memory:
// created at login, destroyed at logout. No credentials are verified — the
// identity is assembled from the supplied username alone.
type Session struct {
	ID        string    `json:"id"`
	AccountID uint      `json:"account_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CanManageAccounts reports whether the session may create, edit or delete
// accounts.
func (s Session) CanManageAccounts() bool { return s.Role == RoleAdmin }

// CanAssign reports whether the session may choose a work item assignee.
// Everyone else falls back to self-assignment.
func (s Session) CanAssign() bool { return s.Role == RoleAdmin || s.Role == RoleManager }

// DeriveRole maps a username to an access tier. This is the simulated session
// establishment rule: two reserved usernames get elevated tiers, everything
// else is a baseline user.
func DeriveRole(username string) string {
	switch username {
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	default:
		return RoleUser
	}
}
