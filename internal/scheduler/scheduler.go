package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/paragon-dao/paragondao-org-sub001/internal/env"
)

// Scheduler keeps the environment report warm by refreshing it periodically,
// so the cache rarely misses for interactive callers.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *env.Service
	interval  time.Duration
}

// New creates a new Scheduler.
func New(service *env.Service, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 10
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.service.Refresh(ctx); err != nil {
			log.Printf("scheduler: environment refresh failed: %v", err)
			return
		}
		log.Println("scheduler: environment report refreshed")
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
