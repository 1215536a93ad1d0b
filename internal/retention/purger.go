// Package retention resets chat history once a day. The purge is a
// blunt global delete across every room, scheduled for local midnight.
package retention

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"daychat/internal/store"
)

// Purger invokes the store's bulk delete on a daily schedule. Failures
// are logged and never affect the next run or any live connection.
type Purger struct {
	store store.MessageStore
	log   *zerolog.Logger
	now   func() time.Time
}

// New constructs a purger. st must not be nil.
func New(st store.MessageStore, logger *zerolog.Logger) *Purger {
	return &Purger{
		store: st,
		log:   logger,
		now:   time.Now,
	}
}

// Run blocks until ctx is cancelled, purging at every local midnight.
// Call in a goroutine.
func (p *Purger) Run(ctx context.Context) {
	for {
		next := nextMidnight(p.now())
		timer := time.NewTimer(next.Sub(p.now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			p.purge(ctx)
		}
	}
}

func (p *Purger) purge(ctx context.Context) {
	count, err := p.store.PurgeAll(ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to purge messages")
		return
	}
	p.log.Info().Int64("deleted", count).Msg("chat history purged")
}

// nextMidnight returns the first 00:00 strictly after now, in now's
// location.
func nextMidnight(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}
