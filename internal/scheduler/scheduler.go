// Package scheduler periodically refreshes the weather snapshot for the
// currently selected location.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"weatherplaces/internal/resolver"
)

// Scheduler drives the periodic weather refresh so the current-conditions
// view stays fresh without user interaction.
type Scheduler struct {
	scheduler *gocron.Scheduler
	resolver  *resolver.Resolver
	interval  time.Duration
	log       *zap.SugaredLogger
}

func New(r *resolver.Resolver, interval time.Duration, log *zap.SugaredLogger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		resolver:  r,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.resolver.RefreshWeather(ctx); err != nil {
			s.log.Warnw("scheduled weather refresh failed", "error", err)
			return
		}
		s.log.Debugw("scheduled weather refresh completed")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
