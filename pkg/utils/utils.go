package utils

import (
	"context"
	"log"
	"time"
)

// GoSafe runs the given function in a new goroutine and recovers from any panic.
type SafeRunner struct {
	fn func()
}

func GoSafe(fn func()) *SafeRunner {
	return &SafeRunner{fn: fn}
}

func (r *SafeRunner) Run() {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[Panic Recovered] %v", rec)
			}
		}()
		r.fn()
	}()
}

func ToPointer[T any](value T) *T {
	return &value
}

// ShouldContinue reports whether the context is still alive.
func ShouldContinue(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	default:
		return true
	}
}

// DateOnly truncates a time to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two times fall on the same UTC calendar date.
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func PrettyDate(t time.Time) string {
	return t.UTC().Format("02 Jan 2006 15:04 MST")
}
