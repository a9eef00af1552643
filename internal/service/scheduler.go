package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mayer-monitor/config"
	"mayer-monitor/pkg/logger"
	"mayer-monitor/pkg/utils"

	"github.com/robfig/cron/v3"
)

type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
	NextRun() time.Time
	LastRun() time.Time
}

// schedulerService triggers one evaluation cycle per schedule tick. The
// cycle itself knows nothing about scheduling; overlapping triggers are
// serialized here with a single-slot semaphore.
type schedulerService struct {
	cfg       *config.Config
	log       *logger.Logger
	monitor   MonitorService
	cron      *cron.Cron
	entryID   cron.EntryID
	semaphore chan struct{}

	mu      sync.Mutex
	lastRun time.Time
}

func NewSchedulerService(cfg *config.Config, log *logger.Logger, monitor MonitorService) SchedulerService {
	return &schedulerService{
		cfg:       cfg,
		log:       log,
		monitor:   monitor,
		cron:      cron.New(),
		semaphore: make(chan struct{}, 1),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	entryID, err := s.cron.AddFunc(s.cfg.Scheduler.CronExpression, func() {
		s.trigger(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", s.cfg.Scheduler.CronExpression, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.log.Info("Scheduler started",
		logger.StringField("cron_expression", s.cfg.Scheduler.CronExpression),
		logger.StringField("next_run", s.NextRun().Format(time.RFC3339)),
	)
	return nil
}

func (s *schedulerService) trigger(ctx context.Context) {
	select {
	case s.semaphore <- struct{}{}:
	default:
		s.log.Warn("Previous evaluation cycle still running, skipping trigger")
		return
	}

	utils.GoSafe(func() {
		defer func() { <-s.semaphore }()

		runCtx, cancel := context.WithTimeout(ctx, s.cfg.Scheduler.TimeoutDuration)
		defer cancel()

		s.mu.Lock()
		s.lastRun = time.Now()
		s.mu.Unlock()

		if _, err := s.monitor.RunCycle(runCtx); err != nil {
			// Already logged at the cycle boundary, nothing else to do:
			// the next scheduled trigger simply tries again.
			return
		}
	}).Run()
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(10 * time.Second):
		s.log.Warn("Timeout while waiting for running jobs to finish")
	}
	s.log.Info("Scheduler stopped")
}

func (s *schedulerService) NextRun() time.Time {
	return s.cron.Entry(s.entryID).Next
}

func (s *schedulerService) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}
