package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mayer-monitor/config"
	"mayer-monitor/internal/dto"
	"mayer-monitor/internal/model"
	"mayer-monitor/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMayerRepo struct {
	reading *dto.MayerReading
	err     error
}

func (f *fakeMayerRepo) GetMayerReading(ctx context.Context) (*dto.MayerReading, error) {
	return f.reading, f.err
}

type fakeStateRepo struct {
	state   model.RollingState
	loadErr error
	saveErr error
	saved   []model.RollingState
}

func (f *fakeStateRepo) Load(ctx context.Context) (model.RollingState, error) {
	return f.state, f.loadErr
}

func (f *fakeStateRepo) Save(ctx context.Context, state model.RollingState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, state)
	f.state = state
	return nil
}

type fakeNotifier struct {
	statuses []*dto.SignalStatus
	sent     int
	err      error
}

func (f *fakeNotifier) NotifySignal(ctx context.Context, status *dto.SignalStatus) (int, error) {
	f.statuses = append(f.statuses, status)
	return f.sent, f.err
}

type fakeCache struct {
	values map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]interface{})}
}

func (f *fakeCache) Set(key string, value interface{}, duration time.Duration) {
	f.values[key] = value
}

func (f *fakeCache) Get(key string) (interface{}, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeCache) Delete(key string) { delete(f.values, key) }
func (f *fakeCache) Flush()            { f.values = make(map[string]interface{}) }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func newTestMonitor(t *testing.T, mayerRepo *fakeMayerRepo, stateRepo *fakeStateRepo, notifier *fakeNotifier) MonitorService {
	t.Helper()
	return NewMonitorService(&config.Config{}, testLogger(t), mayerRepo, stateRepo, notifier, newFakeCache())
}

func TestRunCycle_EmitsSignalAndPersistsState(t *testing.T) {
	mayerRepo := &fakeMayerRepo{reading: &dto.MayerReading{
		Value:        0.9,
		CurrentPrice: 45000,
		MovingAvg:    50000,
		Timestamp:    day(0),
	}}
	stateRepo := &fakeStateRepo{}
	notifier := &fakeNotifier{sent: 3}

	status, err := newTestMonitor(t, mayerRepo, stateRepo, notifier).RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dto.SignalBuy, status.Signal)
	assert.Equal(t, 3, status.NotifiedUsers)

	require.Len(t, stateRepo.saved, 1)
	assert.Equal(t, 0, stateRepo.saved[0].ConsecutiveDaysAboveSellThreshold)
	assert.Equal(t, string(dto.SignalBuy), stateRepo.saved[0].LastSignal)

	require.Len(t, notifier.statuses, 1)
	assert.Equal(t, dto.SignalBuy, notifier.statuses[0].Signal)
}

func TestRunCycle_FetchErrorSkipsCycleWithoutStateMutation(t *testing.T) {
	mayerRepo := &fakeMayerRepo{err: errors.New("coingecko timeout")}
	stateRepo := &fakeStateRepo{state: model.RollingState{
		ConsecutiveDaysAboveSellThreshold: 4,
		LastEvaluatedDate:                 day(-1),
	}}
	notifier := &fakeNotifier{}

	status, err := newTestMonitor(t, mayerRepo, stateRepo, notifier).RunCycle(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dto.ErrFetchFailed)
	assert.Nil(t, status)

	// A skipped cycle must not advance or reset the streak.
	assert.Empty(t, stateRepo.saved)
	assert.Equal(t, 4, stateRepo.state.ConsecutiveDaysAboveSellThreshold)
	assert.Empty(t, notifier.statuses)
}

func TestRunCycle_MalformedReadingIsRejected(t *testing.T) {
	mayerRepo := &fakeMayerRepo{reading: &dto.MayerReading{
		Value:     -1.2,
		Timestamp: day(0),
	}}
	stateRepo := &fakeStateRepo{}
	notifier := &fakeNotifier{}

	_, err := newTestMonitor(t, mayerRepo, stateRepo, notifier).RunCycle(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dto.ErrInvalidReading)
	assert.Empty(t, stateRepo.saved)
}

func TestRunCycle_SaveFailureStillEmitsSignal(t *testing.T) {
	mayerRepo := &fakeMayerRepo{reading: &dto.MayerReading{
		Value:     0.8,
		Timestamp: day(0),
	}}
	stateRepo := &fakeStateRepo{saveErr: dto.ErrSaveState}
	notifier := &fakeNotifier{sent: 1}

	status, err := newTestMonitor(t, mayerRepo, stateRepo, notifier).RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dto.SignalBuy, status.Signal)
	require.Len(t, notifier.statuses, 1)
}

func TestRunCycle_SellAfterSevenPersistedDays(t *testing.T) {
	stateRepo := &fakeStateRepo{}
	notifier := &fakeNotifier{}

	for i := 0; i < 7; i++ {
		mayerRepo := &fakeMayerRepo{reading: &dto.MayerReading{
			Value:     2.5,
			Timestamp: day(i),
		}}
		status, err := newTestMonitor(t, mayerRepo, stateRepo, notifier).RunCycle(context.Background())
		require.NoError(t, err)

		if i < 6 {
			assert.Equal(t, dto.SignalHold, status.Signal, "day %d", i+1)
		} else {
			assert.Equal(t, dto.SignalSell, status.Signal, "day %d", i+1)
		}
	}
}

func TestGetStatus_DoesNotMutateState(t *testing.T) {
	mayerRepo := &fakeMayerRepo{reading: &dto.MayerReading{
		Value:     2.5,
		Timestamp: day(0),
	}}
	stateRepo := &fakeStateRepo{state: model.RollingState{
		ConsecutiveDaysAboveSellThreshold: 3,
		LastEvaluatedDate:                 day(-1),
	}}
	notifier := &fakeNotifier{}

	status, err := newTestMonitor(t, mayerRepo, stateRepo, notifier).GetStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dto.SignalHold, status.Signal)
	assert.Equal(t, 4, status.Streak)
	assert.Empty(t, stateRepo.saved)
	assert.Empty(t, notifier.statuses)
}
