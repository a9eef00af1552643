package dto

import "errors"

var (
	// ErrInvalidReading marks a malformed reading (NaN, negative, no date).
	ErrInvalidReading = errors.New("invalid mayer reading")

	// ErrFetchFailed marks a data source failure or timeout. The cycle is
	// skipped without touching the rolling state.
	ErrFetchFailed = errors.New("failed to fetch mayer multiple")

	// ErrSaveState marks a persistence failure. The cycle's signal is still
	// emitted; the next cycle recomputes from the stale state.
	ErrSaveState = errors.New("failed to save rolling state")

	// ErrNotifyUser marks a per-recipient delivery failure. It never blocks
	// delivery to the remaining recipients.
	ErrNotifyUser = errors.New("failed to notify user")
)
