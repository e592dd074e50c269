package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsSocietyHoliday(t *testing.T) {
	require.True(t, IsSocietyHoliday(time.Date(2024, time.January, 26, 10, 0, 0, 0, time.UTC)))
	require.True(t, IsSocietyHoliday(time.Date(2025, time.August, 15, 10, 0, 0, 0, time.UTC)))
	require.False(t, IsSocietyHoliday(time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)))
}

func TestWithinRadius(t *testing.T) {
	// Roughly 110 m north of the centre.
	require.True(t, WithinRadius(22.5736, 88.3639, 22.5726, 88.3639, 300))
	// Roughly 11 km north.
	require.False(t, WithinRadius(22.6726, 88.3639, 22.5726, 88.3639, 300))
	require.InDelta(t, 0, DistanceMeters(1, 1, 1, 1), 1e-9)
}

func TestValidateCoordinates(t *testing.T) {
	require.True(t, ValidateCoordinates(22.5, 88.3))
	require.False(t, ValidateCoordinates(91, 0))
	require.False(t, ValidateCoordinates(0, -181))
}
