package service

import (
	"context"
	"fmt"
	"time"

	"mayer-monitor/config"
	"mayer-monitor/internal/dto"
	"mayer-monitor/internal/repository"
	"mayer-monitor/pkg/cache"
	"mayer-monitor/pkg/common"
	"mayer-monitor/pkg/logger"
	"mayer-monitor/pkg/utils"
)

type MonitorService interface {
	// RunCycle performs one evaluation: fetch, evaluate, persist, notify.
	RunCycle(ctx context.Context) (*dto.SignalStatus, error)
	// GetStatus evaluates the current reading without mutating any state.
	GetStatus(ctx context.Context) (*dto.SignalStatus, error)
}

type monitorService struct {
	cfg           *config.Config
	log           *logger.Logger
	mayerRepo     repository.MayerMultipleRepository
	stateRepo     repository.SignalStateRepository
	notifier      NotifierService
	inmemoryCache cache.Cache
}

func NewMonitorService(
	cfg *config.Config,
	log *logger.Logger,
	mayerRepo repository.MayerMultipleRepository,
	stateRepo repository.SignalStateRepository,
	notifier NotifierService,
	inmemoryCache cache.Cache,
) MonitorService {
	return &monitorService{
		cfg:           cfg,
		log:           log,
		mayerRepo:     mayerRepo,
		stateRepo:     stateRepo,
		notifier:      notifier,
		inmemoryCache: inmemoryCache,
	}
}

// RunCycle runs one scheduled evaluation. Error handling follows the cycle
// boundary rule: a fetch failure skips the cycle without touching the
// rolling state, a persistence failure still emits the signal, and
// notification failures never propagate past the fan-out.
func (s *monitorService) RunCycle(ctx context.Context) (*dto.SignalStatus, error) {
	reading, err := s.fetchReading(ctx)
	if err != nil {
		// Skip the cycle entirely. The streak and last evaluated date keep
		// the values from the last successful reading, which only delays a
		// SELL rather than firing it early.
		return nil, err
	}

	prior, err := s.stateRepo.Load(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load rolling state, skipping cycle", logger.ErrorField(err))
		return nil, err
	}

	signal, next := Evaluate(*reading, prior)

	status := &dto.SignalStatus{
		Reading:           *reading,
		Signal:            signal,
		Streak:            next.ConsecutiveDaysAboveSellThreshold,
		LastEvaluatedDate: next.LastEvaluatedDate,
	}

	if err := s.stateRepo.Save(ctx, next); err != nil {
		// Not fatal to the cycle. The next run recomputes from the stale
		// state, which can only under-count the streak.
		s.log.WarnContext(ctx, "Failed to save rolling state, signal still emitted", logger.ErrorField(err))
	}

	s.log.InfoContext(ctx, "Evaluation cycle completed",
		logger.StringField("signal", string(signal)),
		logger.Float64Field("mayer_multiple", reading.Value),
		logger.IntField("streak", next.ConsecutiveDaysAboveSellThreshold),
	)

	sent, err := s.notifier.NotifySignal(ctx, status)
	if err != nil {
		s.log.ErrorContext(ctx, "Signal notification failed", logger.ErrorField(err))
	}
	status.NotifiedUsers = sent

	return status, nil
}

// GetStatus serves the /status command and the HTTP API. It evaluates the
// freshest reading against the persisted state but never writes anything
// back, so polling the status cannot advance the streak.
func (s *monitorService) GetStatus(ctx context.Context) (*dto.SignalStatus, error) {
	reading, err := s.fetchReading(ctx)
	if err != nil {
		return nil, err
	}

	prior, err := s.stateRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	signal, next := Evaluate(*reading, prior)
	return &dto.SignalStatus{
		Reading:           *reading,
		Signal:            signal,
		Streak:            next.ConsecutiveDaysAboveSellThreshold,
		LastEvaluatedDate: next.LastEvaluatedDate,
	}, nil
}

func (s *monitorService) fetchReading(ctx context.Context) (*dto.MayerReading, error) {
	reading, err := s.mayerRepo.GetMayerReading(ctx)
	if err != nil {
		s.noteFetchFailure(ctx, err)
		return nil, fmt.Errorf("%w: %v", dto.ErrFetchFailed, err)
	}

	if err := reading.Validate(); err != nil {
		s.log.ErrorContext(ctx, "Rejected malformed reading",
			logger.ErrorField(err),
			logger.Float64Field("value", reading.Value),
		)
		return nil, err
	}
	return reading, nil
}

// noteFetchFailure logs the outage, at Error level only on the first
// failure of the day so a multi-day outage does not flood the alert log.
func (s *monitorService) noteFetchFailure(ctx context.Context, err error) {
	key := fmt.Sprintf(common.KEY_FETCH_FAILURE_NOTED, utils.FormatDate(time.Now()))
	if _, noted := s.inmemoryCache.Get(key); noted {
		s.log.WarnContext(ctx, "Data source still unavailable", logger.ErrorField(err))
		return
	}
	s.inmemoryCache.Set(key, true, 24*time.Hour)
	s.log.ErrorContext(ctx, "Failed to fetch Mayer Multiple, cycle skipped", logger.ErrorField(err))
}
