// Package scheduler posts the weekly calendar digest once per week.
package scheduler

import (
	"context"
	"time"

	"github.com/mstrand/econcal/internal/digest"
	"github.com/mstrand/econcal/internal/logger"
	"github.com/mstrand/econcal/internal/storage"
)

// Poster delivers one rendered digest to a channel.
type Poster interface {
	Post(channelID, content string) error
}

// Scheduler polls on an interval and posts the digest the first time it
// runs in a given week. The posted marker survives restarts.
type Scheduler struct {
	store     *storage.Store
	fetcher   digest.Fetcher
	opts      digest.Options
	channelID string
	interval  time.Duration
	now       func() time.Time
}

// New creates a scheduler. A zero interval defaults to one hour.
func New(store *storage.Store, fetcher digest.Fetcher, opts digest.Options, channelID string, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		store:     store,
		fetcher:   fetcher,
		opts:      opts,
		channelID: channelID,
		interval:  interval,
		now:       time.Now,
	}
}

// Run blocks until ctx is done, checking once immediately and then on
// every interval tick.
func (s *Scheduler) Run(ctx context.Context, poster Poster) {
	s.tick(ctx, poster)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, poster)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, poster Poster) {
	weekStart := digest.WeekStart(s.now())
	if s.store.AlreadyPosted(weekStart) {
		return
	}

	summary, err := digest.TryReport(ctx, s.fetcher, s.now(), s.opts)
	if err != nil {
		// Leave the week unmarked so the next tick retries.
		return
	}
	if err := poster.Post(s.channelID, summary); err != nil {
		logger.Error("posting weekly digest failed", logger.Fields{"channel": s.channelID}, err)
		return
	}
	if err := s.store.MarkPosted(weekStart); err != nil {
		logger.Error("recording digest marker failed", logger.Fields{"week": weekStart.Format("2006-01-02")}, err)
		return
	}
	logger.Info("weekly digest posted", logger.Fields{"week": weekStart.Format("2006-01-02")})
}
