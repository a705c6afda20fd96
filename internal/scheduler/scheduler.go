// Package scheduler runs periodic maintenance jobs such as dataset catalog reloads.
package scheduler

import (
	"fmt"
	"sync/atomic"

	"github.com/guttosm/bond-optimizer/internal/metrics"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Reloader refreshes a data source in place.
type Reloader interface {
	Reload() error
}

// Scheduler manages the cron jobs of the service.
type Scheduler struct {
	cron    *cron.Cron
	catalog Reloader
	reloads atomic.Int64
	fails   atomic.Int64
}

// New creates a scheduler for the given catalog.
func New(catalog Reloader) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		catalog: catalog,
	}
}

// RegisterReload schedules catalog reloads with a standard five-field cron schedule.
// An empty schedule registers nothing.
func (s *Scheduler) RegisterReload(schedule string) error {
	if schedule == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(schedule, s.reloadCatalog); err != nil {
		return fmt.Errorf("register dataset reload: %w", err)
	}
	log.Info().Str("schedule", schedule).Msg("Dataset reload scheduled")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Scheduler stopped")
}

// RunReloadNow executes the reload job immediately.
func (s *Scheduler) RunReloadNow() {
	s.reloadCatalog()
}

// Stats returns the number of successful and failed reloads.
func (s *Scheduler) Stats() (reloads, failures int64) {
	return s.reloads.Load(), s.fails.Load()
}

func (s *Scheduler) reloadCatalog() {
	if err := s.catalog.Reload(); err != nil {
		s.fails.Add(1)
		metrics.RecordDatasetReload("failure")
		log.Error().Err(err).Msg("Dataset reload failed, keeping previous datasets")
		return
	}
	s.reloads.Add(1)
	metrics.RecordDatasetReload("success")
	log.Debug().Msg("Datasets reloaded")
}
