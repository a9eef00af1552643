package service

import (
	"context"
	"testing"
	"time"

	"mayer-monitor/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_StartRejectsInvalidCronExpression(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.CronExpression = "not a cron"
	cfg.Scheduler.TimeoutDuration = time.Minute

	s := NewSchedulerService(cfg, testLogger(t), newTestMonitor(t, &fakeMayerRepo{}, &fakeStateRepo{}, &fakeNotifier{}))
	err := s.Start(context.Background())
	require.Error(t, err)
}

func TestScheduler_StartSetsNextRun(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.CronExpression = "0 9 * * *"
	cfg.Scheduler.TimeoutDuration = time.Minute

	s := NewSchedulerService(cfg, testLogger(t), newTestMonitor(t, &fakeMayerRepo{}, &fakeStateRepo{}, &fakeNotifier{}))
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.True(t, s.NextRun().After(time.Now()))
	assert.True(t, s.LastRun().IsZero())
}
