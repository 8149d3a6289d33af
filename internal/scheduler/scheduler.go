package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// RunFunc is one full pipeline run
type RunFunc func(ctx context.Context) error

// Scheduler runs the pipeline on a cron schedule. At most one run is active
// at a time; a tick that fires while a run is active is skipped.
type Scheduler struct {
	spec    string
	run     RunFunc
	cron    *cron.Cron
	running sync.Mutex
	wg      sync.WaitGroup
}

// NewScheduler creates a new scheduler instance
func NewScheduler(spec string, run RunFunc) *Scheduler {
	return &Scheduler{
		spec: spec,
		run:  run,
		cron: cron.New(),
	}
}

// Start registers the pipeline job and starts the cron loop
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.spec, func() {
		if !s.Trigger(ctx) {
			log.Warn().Str("schedule", s.spec).Msg("Previous pipeline run still active, skipping tick")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule pipeline: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.spec).
		Msg("Pipeline run scheduled")

	return nil
}

// Trigger runs the pipeline now unless a run is already active. It blocks
// until the run finishes and reports whether it ran.
func (s *Scheduler) Trigger(ctx context.Context) bool {
	if !s.running.TryLock() {
		return false
	}
	defer s.running.Unlock()

	s.wg.Add(1)
	defer s.wg.Done()

	if ctx.Err() != nil {
		return false
	}

	start := time.Now()
	log.Info().Msg("Running pipeline...")
	if err := s.run(ctx); err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("Pipeline run failed")
	} else {
		log.Info().Dur("duration", time.Since(start)).Msg("Pipeline run finished")
	}
	return true
}

// Stop stops the cron loop and waits for an active run to return
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	s.wg.Wait()

	log.Info().Msg("Scheduler stopped")
}
