package dto

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMayerReading_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		reading MayerReading
		wantErr bool
	}{
		{
			name:    "well-formed reading",
			reading: MayerReading{Value: 1.8, Timestamp: now},
		},
		{
			name:    "zero is still a finite value",
			reading: MayerReading{Value: 0, Timestamp: now},
		},
		{
			name:    "NaN rejected",
			reading: MayerReading{Value: math.NaN(), Timestamp: now},
			wantErr: true,
		},
		{
			name:    "positive infinity rejected",
			reading: MayerReading{Value: math.Inf(1), Timestamp: now},
			wantErr: true,
		},
		{
			name:    "negative value rejected",
			reading: MayerReading{Value: -0.5, Timestamp: now},
			wantErr: true,
		},
		{
			name:    "missing timestamp rejected",
			reading: MayerReading{Value: 1.2},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reading.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidReading)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMarketChartRangeResponse_DailyClosePrices(t *testing.T) {
	resp := MarketChartRangeResponse{Prices: [][]float64{
		{1700000000000, 41000},
		{1700086400000, 42000},
		{1700172800000}, // malformed pair, skipped
		{1700259200000, 43000},
	}}

	assert.Equal(t, []float64{41000, 42000, 43000}, resp.DailyClosePrices())
}
