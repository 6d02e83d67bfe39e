package leaderboard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackPosition(t *testing.T) {
	tests := []struct {
		name   string
		score  float64
		goal   float64
		layout TrackLayout
		want   float64
	}{
		{"half way", 50, 100, RegionTrack, 50},
		{"clamped to the finish margin", 150, 100, RegionTrack, 92},
		{"clamped to the start margin", 1, 100, RegionTrack, 4},
		{"store track margins", 0, StoreGoal, StoreTrack, 2},
		{"store track finish", 200, StoreGoal, StoreTrack, 96},
		{"store track middle", 60, StoreGoal, StoreTrack, 50},
		{"zero goal", 50, 0, RegionTrack, 4},
		{"negative goal", 50, -10, RegionTrack, 4},
		{"nan goal", 50, math.NaN(), StoreTrack, 2},
		{"nan score", math.NaN(), 100, RegionTrack, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TrackPosition(tt.score, tt.goal, tt.layout), 1e-9)
		})
	}
}

func TestTrackPosition_Monotonic(t *testing.T) {
	previous := TrackPosition(-10, 80, RegionTrack)
	for score := -10.0; score <= 200; score += 0.5 {
		position := TrackPosition(score, 80, RegionTrack)
		assert.GreaterOrEqual(t, position, previous, "score %v", score)
		assert.GreaterOrEqual(t, position, RegionTrack.MinMargin)
		assert.LessOrEqual(t, position, RegionTrack.MaxMargin)
		previous = position
	}
}
