package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, 3, 1, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}

func TestSameDate(t *testing.T) {
	morning := time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	nextDay := time.Date(2025, 3, 2, 0, 0, 1, 0, time.UTC)

	assert.True(t, SameDate(morning, evening))
	assert.False(t, SameDate(evening, nextDay))

	// Timezone offsets collapse onto the UTC calendar date.
	jakarta := time.FixedZone("WIB", 7*3600)
	lateWIB := time.Date(2025, 3, 2, 5, 0, 0, 0, jakarta) // 2025-03-01 22:00 UTC
	assert.True(t, SameDate(evening, lateWIB))
}

func TestFormatAndParseDate(t *testing.T) {
	ts := time.Date(2025, 3, 1, 15, 4, 5, 0, time.UTC)
	require.Equal(t, "2025-03-01", FormatDate(ts))

	parsed, err := ParseDate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, DateOnly(ts), DateOnly(parsed))
}
