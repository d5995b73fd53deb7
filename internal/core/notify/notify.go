// Package notify manages transient, auto-expiring feedback messages.
//
// One slot exists per severity: a new push of the same severity replaces the
// current message and restarts its expiry timer. There is no queueing or
// stacking, and the two severities never interact.
package notify

import (
	"sync"
	"time"

	"github.com/taskops/admin-console/internal/core/domain"
	"github.com/taskops/admin-console/internal/metrics"
)

const (
	DefaultSuccessTTL = 3 * time.Second
	DefaultErrorTTL   = 5 * time.Second
)

type slot struct {
	note  domain.Notification
	timer *time.Timer
	gen   uint64 // guards against a stale timer clearing a newer message
}

// Center owns the two notification slots and their expiry timers. Timers are
// stopped and replaced atomically on each push, so a timer armed for an old
// message can never clear a new one.
type Center struct {
	mu         sync.Mutex
	slots      map[domain.Severity]*slot
	successTTL time.Duration
	errorTTL   time.Duration
	now        func() time.Time
}

// New returns a Center with the given expiry windows. Non-positive values fall
// back to the 3s/5s defaults.
func New(successTTL, errorTTL time.Duration) *Center {
	if successTTL <= 0 {
		successTTL = DefaultSuccessTTL
	}
	if errorTTL <= 0 {
		errorTTL = DefaultErrorTTL
	}
	return &Center{
		slots:      make(map[domain.Severity]*slot, 2),
		successTTL: successTTL,
		errorTTL:   errorTTL,
		now:        time.Now,
	}
}

// Success pushes a success message.
func (c *Center) Success(message string) {
	c.Push(message, domain.SeveritySuccess)
}

// Error pushes an error message.
func (c *Center) Error(message string) {
	c.Push(message, domain.SeverityError)
}

// Push sets the message for the given severity slot and (re)starts its expiry
// timer.
func (c *Center) Push(message string, severity domain.Severity) {
	ttl := c.successTTL
	if severity == domain.SeverityError {
		ttl = c.errorTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.slots[severity]
	if s == nil {
		s = &slot{}
		c.slots[severity] = s
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	s.note = domain.Notification{
		Message:  message,
		Severity: severity,
		PushedAt: c.now(),
		TTL:      ttl,
	}

	gen := s.gen
	s.timer = time.AfterFunc(ttl, func() {
		c.expire(severity, gen)
	})

	metrics.NotificationsPushedTotal.WithLabelValues(string(severity)).Inc()
}

// expire clears the slot, but only if no newer message replaced it since the
// timer was armed.
func (c *Center) expire(severity domain.Severity, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.slots[severity]
	if s == nil || s.gen != gen {
		return
	}
	s.note = domain.Notification{}
	s.timer = nil
}

// Snapshot returns the currently visible notifications, error first.
func (c *Center) Snapshot() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Notification, 0, 2)
	for _, sev := range []domain.Severity{domain.SeverityError, domain.SeveritySuccess} {
		if s := c.slots[sev]; s != nil && s.note.Message != "" {
			out = append(out, s.note)
		}
	}
	return out
}

// Reset clears both slots and stops any armed timers.
func (c *Center) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.slots {
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		s.gen++
		s.note = domain.Notification{}
	}
}
