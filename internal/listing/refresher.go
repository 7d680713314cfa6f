package listing

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/campuskart/campuskart/internal/appstate"
)

// Refresher bumps the refresh token on a fixed interval so the listing
// feed refetches even without a local mutation (another user may have
// listed or sold something).
type Refresher struct {
	cron  *cron.Cron
	state *appstate.Controller
	log   *slog.Logger
}

// NewRefresher creates a Refresher bumping every interval.
func NewRefresher(
	state *appstate.Controller,
	interval time.Duration,
	log *slog.Logger,
) (*Refresher, error) {
	c := cron.New()

	r := &Refresher{
		cron:  c,
		state: state,
		log:   log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), r.bump); err != nil {
		return nil, err
	}

	return r, nil
}

// Start begins the periodic bumps.
func (r *Refresher) Start() {
	r.log.Info("listing refresher started")
	r.cron.Start()
}

// Stop gracefully stops the refresher, waiting for a running bump to
// finish.
func (r *Refresher) Stop() context.Context {
	r.log.Info("listing refresher stopping")
	return r.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (r *Refresher) Entries() []cron.Entry {
	return r.cron.Entries()
}

func (r *Refresher) bump() {
	r.log.Debug("scheduled listing refresh")
	r.state.BumpRefresh()
}
