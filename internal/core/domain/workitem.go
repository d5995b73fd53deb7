package domain

import "time"

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is a recognised work item status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether p is a recognised work item priority.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// WorkItem is a trackable unit of work managed through the remote tracker
// service. AssignedTo and CreatedBy reference Account IDs; zero means
// unassigned.
type WorkItem struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	AssignedTo     uint      `json:"assigned_to"`
	ProjectID      uint      `json:"project_id"`
	CreatedBy      uint      `json:"created_by"`
	DueDate        time.Time `json:"due_date"`
	EstimatedHours float64   `json:"estimated_hours"`
	ActualHours    float64   `json:"actual_hours"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (w WorkItem) EntityID() uint { return w.ID }
