package app

import (
	"context"
	"time"

	"github.com/avolkov/daily-digest-bot/internal/service"
)

// nextRun returns the next occurrence of hh:mm after now, in now's location.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, minute, 0, 0, now.Location())
	}
	return next
}

// runScheduler fires the daily delivery at the configured Moscow time until
// the context is cancelled.
func (a *App) runScheduler(ctx context.Context) {
	loc := service.MoscowLocation()
	for {
		next := nextRun(time.Now().In(loc), a.cfg.ReportHour, a.cfg.ReportMinute)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			a.logger.Info().Msg("daily digest triggered")
			a.digest.DeliverDaily(ctx)
		}
	}
}
