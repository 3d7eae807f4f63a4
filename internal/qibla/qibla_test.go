package qibla

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     float64
		delta    float64
	}{
		{"Muscat", 23.61, 58.59, 266.5, 0.5},
		{"London", 51.5074, -0.1278, 119, 2},
		{"New York", 40.7128, -74.0060, 58.5, 2},
		{"Jakarta", -6.2088, 106.8456, 295, 2},
		{"due north of the Kaaba", 40, KaabaLongitude, 180, 0.001},
		{"due south of the Kaaba", 0, KaabaLongitude, 0, 0.001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Direction(tt.lat, tt.lon)
			assert.InDelta(t, tt.want, got, tt.delta)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
		})
	}
}

// The great-circle bearing from Muscat points west, slightly south of due
// west. A figure near 296 degrees sometimes quoted for Muscat does not come out
// of the bearing formula.
func TestDirection_MuscatIsWestward(t *testing.T) {
	got := Direction(23.61, 58.59)
	assert.True(t, got > 260 && got < 270, "bearing %.2f", got)
	assert.Equal(t, "W", Compass(got))
}

func TestCompass(t *testing.T) {
	assert.Equal(t, "N", Compass(0))
	assert.Equal(t, "N", Compass(359))
	assert.Equal(t, "E", Compass(90))
	assert.Equal(t, "WNW", Compass(296))
	assert.Equal(t, "W", Compass(266.5))
	assert.Equal(t, "SE", Compass(-225))
}
