package dto

import "time"

// RunCycleRequest is the optional body of the manual run endpoint. The
// timeout caps how long the triggered cycle may take, independent of the
// scheduler's own deadline.
type RunCycleRequest struct {
	TimeoutSeconds int `json:"timeout_seconds" validate:"omitempty,min=1,max=600"`
}

// SignalStatus is the outcome of one evaluation, shared by the Telegram
// /status command and the HTTP API.
type SignalStatus struct {
	Reading           MayerReading `json:"reading"`
	Signal            Signal       `json:"signal"`
	Streak            int          `json:"streak"`
	LastEvaluatedDate time.Time    `json:"last_evaluated_date"`
	NotifiedUsers     int          `json:"notified_users,omitempty"`
}
