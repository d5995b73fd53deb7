package domain

import "time"

// Severity of a transient notification. The two severities occupy independent
// slots and never interact.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient, auto-expiring feedback message.
type Notification struct {
	Message  string        `json:"message"`
	Severity Severity      `json:"severity"`
	PushedAt time.Time     `json:"pushed_at"`
	TTL      time.Duration `json:"-"`
}
