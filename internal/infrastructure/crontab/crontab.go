// Package crontab schedules the periodic session reaper.
package crontab

import (
	"context"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"dashboard-server/internal/domain/conversation"
	"dashboard-server/internal/utils/platformerrors"
)

// Crontab owns the background schedule for the session store.
type Crontab struct {
	ctab     *crontab.Crontab
	sessions *conversation.Store
	log      zerolog.Logger
}

// NewCrontab constructs the scheduler.
func NewCrontab(sessions *conversation.Store, log zerolog.Logger) *Crontab {
	return &Crontab{
		ctab:     crontab.New(),
		sessions: sessions,
		log:      log.With().Str("component", "crontab").Logger(),
	}
}

// Run schedules the idle-session reaper and blocks until the context is
// cancelled.
func (c *Crontab) Run(ctx context.Context) error {
	if err := c.ctab.AddJob("* * * * *", func() {
		c.sessions.ReapIdle()
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add session reaper job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}
