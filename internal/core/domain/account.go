package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// ValidRole reports whether r is one of the recognised access tiers.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleUser
}

var (
	ErrRemote               = errors.New("remote service error")
	ErrForbidden            = errors.New("access forbidden")
	ErrNotFound             = errors.New("entity not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrFormClosed           = errors.New("no form is open")
)

// Account is an operator-visible system user managed through the remote
// directory service. IDs are assigned server-side.
type Account struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Account) EntityID() uint { return a.ID }

// Entity is the constraint shared by every synchronised collection element.
type Entity interface {
	EntityID() uint
}
