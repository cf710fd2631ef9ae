package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 10 * time.Minute

// Scheduler runs the weekly contest resolution and the nightly counter reconciliation.
type Scheduler struct {
	cron           *cron.Cron
	contestService service.ContestService
	tripService    service.TripService
	resolveSpec    string
	reconcileSpec  string
}

func New(config dto.Config, contestService service.ContestService, tripService service.TripService) *Scheduler {
	logger := cron.PrintfLogger(logrus.StandardLogger())
	return &Scheduler{
		// overlapping runs are skipped
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(config.Location()),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		contestService: contestService,
		tripService:    tripService,
		resolveSpec:    config.ResolveSchedule,
		reconcileSpec:  config.ReconcileSchedule,
	}
}

// Start registers the jobs and starts the cron loop. Jobs run with ctx as parent.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.resolveSpec, func() { s.ResolveContest(ctx) }); err != nil {
		return fmt.Errorf("contest resolve schedule %q: %w", s.resolveSpec, err)
	}
	if _, err := s.cron.AddFunc(s.reconcileSpec, func() { s.ReconcileTripCounts(ctx) }); err != nil {
		return fmt.Errorf("reconcile schedule %q: %w", s.reconcileSpec, err)
	}

	s.cron.Start()
	logrus.Infof("Scheduler started (resolve %q, reconcile %q)", s.resolveSpec, s.reconcileSpec)
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logrus.Info("Scheduler stopped")
}

func (s *Scheduler) ResolveContest(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	record, err := s.contestService.ResolvePreviousWeek(ctx)
	if err != nil {
		logrus.Errorf("Contest resolution failed after %s: %v", time.Since(start), err)
		return
	}
	logrus.Infof("Contest week %d/%d resolved in %s", record.WeekNumber, record.Year, time.Since(start))
}

func (s *Scheduler) ReconcileTripCounts(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	fixed, err := s.tripService.ReconcileAll(ctx)
	if err != nil {
		logrus.Errorf("Trip count reconciliation finished with errors after %s (%d fixed): %v", time.Since(start), fixed, err)
		return
	}
	logrus.Infof("Trip count reconciliation fixed %d videos in %s", fixed, time.Since(start))
}
