// Package jobs hosts background maintenance for the console.
package jobs

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/taskops/admin-console/internal/core/console"
)

// SessionWalker iterates over every live console session.
type SessionWalker interface {
	ForEach(fn func(*console.State))
	Count() int
}

// Refresher periodically re-synchronises both collections for every live
// session. Disabled unless a schedule is configured; manual and tab-driven
// refreshes are unaffected either way.
type Refresher struct {
	cron     *cron.Cron
	sessions SessionWalker
	log      zerolog.Logger
}

// NewRefresher registers the re-sync job on schedule (a standard cron
// expression). Returns an error when the expression does not parse.
func NewRefresher(schedule string, sessions SessionWalker, log zerolog.Logger) (*Refresher, error) {
	r := &Refresher{
		cron:     cron.New(),
		sessions: sessions,
		log:      log,
	}
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, err
	}
	return r, nil
}

// Start launches the scheduler in its own goroutine.
func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop halts the scheduler; a run already in progress completes.
func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) run() {
	n := r.sessions.Count()
	if n == 0 {
		return
	}
	r.log.Debug().Int("sessions", n).Msg("periodic collection re-sync")
	r.sessions.ForEach(func(s *console.State) {
		s.Refresh()
	})
}
