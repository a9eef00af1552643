package service

import (
	"testing"
	"time"

	"mayer-monitor/internal/dto"
	"mayer-monitor/internal/model"
	"mayer-monitor/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	return time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func reading(value float64, offset int) dto.MayerReading {
	return dto.MayerReading{
		Value:     value,
		Timestamp: day(offset),
	}
}

func TestEvaluate_Thresholds(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		prior      model.RollingState
		wantSignal dto.Signal
		wantStreak int
	}{
		{
			name:       "below buy threshold returns BUY",
			value:      0.9,
			wantSignal: dto.SignalBuy,
			wantStreak: 0,
		},
		{
			name:  "BUY day resets an existing streak",
			value: 0.5,
			prior: model.RollingState{
				ConsecutiveDaysAboveSellThreshold: 5,
				LastEvaluatedDate:                 day(-1),
			},
			wantSignal: dto.SignalBuy,
			wantStreak: 0,
		},
		{
			name:       "inside band returns HOLD",
			value:      1.5,
			wantSignal: dto.SignalHold,
			wantStreak: 0,
		},
		{
			name:       "exactly 1.0 is HOLD, not BUY",
			value:      1.0,
			wantSignal: dto.SignalHold,
			wantStreak: 0,
		},
		{
			name:       "exactly 2.4 is HOLD and resets the streak",
			value:      2.4,
			prior: model.RollingState{
				ConsecutiveDaysAboveSellThreshold: 6,
				LastEvaluatedDate:                 day(-1),
			},
			wantSignal: dto.SignalHold,
			wantStreak: 0,
		},
		{
			name:       "first day above sell threshold starts the streak",
			value:      2.5,
			wantSignal: dto.SignalHold,
			wantStreak: 1,
		},
		{
			name:  "seventh consecutive day above threshold returns SELL",
			value: 2.5,
			prior: model.RollingState{
				ConsecutiveDaysAboveSellThreshold: 6,
				LastEvaluatedDate:                 day(-1),
			},
			wantSignal: dto.SignalSell,
			wantStreak: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal, next := Evaluate(reading(tt.value, 0), tt.prior)
			assert.Equal(t, tt.wantSignal, signal)
			assert.Equal(t, tt.wantStreak, next.ConsecutiveDaysAboveSellThreshold)
			assert.Equal(t, utils.DateOnly(day(0)), next.LastEvaluatedDate)
			assert.Equal(t, string(tt.wantSignal), next.LastSignal)
		})
	}
}

func TestEvaluate_SevenDayStreakFiresSell(t *testing.T) {
	state := model.RollingState{}
	values := []float64{2.5, 2.5, 2.5, 2.5, 2.5, 2.5, 2.5}
	wantSignals := []dto.Signal{
		dto.SignalHold, dto.SignalHold, dto.SignalHold,
		dto.SignalHold, dto.SignalHold, dto.SignalHold,
		dto.SignalSell,
	}

	for i, v := range values {
		var signal dto.Signal
		signal, state = Evaluate(reading(v, i), state)
		assert.Equal(t, wantSignals[i], signal, "day %d", i+1)
		assert.Equal(t, i+1, state.ConsecutiveDaysAboveSellThreshold, "day %d", i+1)
	}
}

func TestEvaluate_SameDayReEvaluationIsIdempotent(t *testing.T) {
	state := model.RollingState{}

	signal, state := Evaluate(reading(2.5, 0), state)
	require.Equal(t, dto.SignalHold, signal)
	require.Equal(t, 1, state.ConsecutiveDaysAboveSellThreshold)

	// Re-run on the same calendar date, later in the day.
	later := dto.MayerReading{Value: 2.6, Timestamp: day(0).Add(8 * time.Hour)}
	signal, state = Evaluate(later, state)
	assert.Equal(t, dto.SignalHold, signal)
	assert.Equal(t, 1, state.ConsecutiveDaysAboveSellThreshold)

	// The next calendar day advances it again.
	signal, state = Evaluate(reading(2.5, 1), state)
	assert.Equal(t, dto.SignalHold, signal)
	assert.Equal(t, 2, state.ConsecutiveDaysAboveSellThreshold)
}

func TestEvaluate_InterruptedStreakResets(t *testing.T) {
	state := model.RollingState{}
	values := []float64{2.5, 2.5, 2.0, 2.5, 2.5, 2.5, 2.5, 2.5, 2.5}

	var signal dto.Signal
	for i, v := range values {
		signal, state = Evaluate(reading(v, i), state)
		// SELL must not fire anywhere in this sequence: the 2.0 reading on
		// day 3 resets the count, leaving only 6 qualifying days after it.
		assert.Equal(t, dto.SignalHold, signal, "day %d", i+1)
	}
	assert.Equal(t, 6, state.ConsecutiveDaysAboveSellThreshold)

	// One more qualifying day completes a fresh 7-day run.
	signal, state = Evaluate(reading(2.5, len(values)), state)
	assert.Equal(t, dto.SignalSell, signal)
	assert.Equal(t, 7, state.ConsecutiveDaysAboveSellThreshold)
}

func TestEvaluate_StreakHoldsAboveSevenDays(t *testing.T) {
	state := model.RollingState{
		ConsecutiveDaysAboveSellThreshold: 7,
		LastEvaluatedDate:                 day(-1),
	}

	signal, next := Evaluate(reading(2.8, 0), state)
	assert.Equal(t, dto.SignalSell, signal)
	assert.Equal(t, 8, next.ConsecutiveDaysAboveSellThreshold)
}
