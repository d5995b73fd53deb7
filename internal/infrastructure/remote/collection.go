package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskops/admin-console/internal/core/domain"
	"github.com/taskops/admin-console/internal/core/ports"
	"github.com/taskops/admin-console/internal/metrics"
)

// collection implements ports.Collection for one entity path. The remote
// service envelopes list responses under an entity-named key, but older
// deployments return a bare array or an "items" envelope; normalise accepts
// all three.
type collection[T domain.Entity] struct {
	client *Client
	path   string // e.g. "/users"
	key    string // envelope key, e.g. "users"
	entity string // metrics label
}

// NewAccountDirectory returns the client for the remote /users collection.
func NewAccountDirectory(c *Client) ports.AccountDirectory {
	return &collection[domain.Account]{client: c, path: "/users", key: "users", entity: "users"}
}

// NewWorkItemTracker returns the client for the remote /tasks collection.
func NewWorkItemTracker(c *Client) ports.WorkItemTracker {
	return &collection[domain.WorkItem]{client: c, path: "/tasks", key: "tasks", entity: "tasks"}
}

func (r *collection[T]) List(ctx context.Context) ([]T, error) {
	data, err := r.observe(ctx, "list", http.MethodGet, r.path, nil)
	if err != nil {
		return nil, err
	}
	return normalise[T](data, r.key)
}

func (r *collection[T]) Create(ctx context.Context, item T) error {
	_, err := r.observe(ctx, "create", http.MethodPost, r.path, item)
	return err
}

func (r *collection[T]) Update(ctx context.Context, id uint, item T) error {
	_, err := r.observe(ctx, "update", http.MethodPut, fmt.Sprintf("%s/%d", r.path, id), item)
	return err
}

func (r *collection[T]) Delete(ctx context.Context, id uint) error {
	_, err := r.observe(ctx, "delete", http.MethodDelete, fmt.Sprintf("%s/%d", r.path, id), nil)
	return err
}

// observe wraps Client.do with per-call metrics.
func (r *collection[T]) observe(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	timer := prometheus.NewTimer(metrics.RemoteCallDuration.WithLabelValues(r.entity, op))
	data, err := r.client.do(ctx, method, path, payload)
	timer.ObserveDuration()

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.RemoteCallsTotal.WithLabelValues(r.entity, op, outcome).Inc()
	return data, err
}

// normalise converts a list response body into a slice of T. A bare array and
// enveloped forms (entity-named key or "items") are accepted; any other
// well-formed shape yields an empty slice. A body that is not valid JSON at
// all counts as a remote failure.
func normalise[T domain.Entity](data []byte, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: malformed collection body", domain.ErrRemote)
	}

	var bare []T
	if err := json.Unmarshal(trimmed, &bare); err == nil {
		return bare, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		// Well-formed JSON that is neither an array nor an object.
		return []T{}, nil
	}
	for _, k := range []string{key, "items"} {
		raw, ok := envelope[k]
		if !ok {
			continue
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
	}

	return []T{}, nil
}
