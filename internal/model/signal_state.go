package model

import "time"

// RollingState tracks the streak of consecutive calendar days the Mayer
// Multiple has closed above the sell threshold. It is the only state that
// survives across evaluation cycles; it is loaded before each cycle and
// written back after.
type RollingState struct {
	ConsecutiveDaysAboveSellThreshold int       `json:"consecutive_days_above_sell_threshold"`
	LastEvaluatedDate                 time.Time `json:"last_evaluated_date"`
	LastSignal                        string    `json:"last_signal,omitempty"`
	LastValue                         float64   `json:"last_value,omitempty"`
}

// Evaluated reports whether the state carries at least one prior evaluation.
func (s RollingState) Evaluated() bool {
	return !s.LastEvaluatedDate.IsZero()
}
