package dto

import (
	"math"
	"time"
)

// MayerReading is one observation of the Mayer Multiple, created once per
// evaluation cycle and discarded afterwards.
type MayerReading struct {
	Value        float64   `json:"value"`
	CurrentPrice float64   `json:"current_price"`
	MovingAvg    float64   `json:"moving_avg"`
	Timestamp    time.Time `json:"timestamp"`
}

// Validate rejects malformed readings before they reach the evaluator.
func (r MayerReading) Validate() error {
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return ErrInvalidReading
	}
	if r.Value < 0 {
		return ErrInvalidReading
	}
	if r.Timestamp.IsZero() {
		return ErrInvalidReading
	}
	return nil
}
