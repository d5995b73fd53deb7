package ports

import (
	"context"

	"github.com/taskops/admin-console/internal/core/domain"
)

// Collection is the client-side view of one remote resource collection.
// Create submits a record without an ID (the server assigns one); Update is a
// full-record replacement. Any failed call — connectivity, non-success status,
// malformed body — surfaces as domain.ErrRemote; no finer classification is
// made and no retries are attempted.
type Collection[T domain.Entity] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) error
	Update(ctx context.Context, id uint, item T) error
	Delete(ctx context.Context, id uint) error
}

// AccountDirectory is the remote /users collection.
type AccountDirectory = Collection[domain.Account]

// WorkItemTracker is the remote /tasks collection.
type WorkItemTracker = Collection[domain.WorkItem]
