package leaderboard

import (
	"math"

	"github.com/checkmarble/challenge-backend/pure_utils"
)

// TrackLayout describes a race track, in percent of the track width.
type TrackLayout struct {
	WidthPercent float64
	MinMargin    float64
	MaxMargin    float64
}

var (
	RegionTrack = TrackLayout{WidthPercent: 100, MinMargin: 4, MaxMargin: 92}
	StoreTrack  = TrackLayout{WidthPercent: 100, MinMargin: 2, MaxMargin: 96}
)

// StoreGoal is the fixed finish line of the store race, in percent of objective.
const StoreGoal = 120

// TrackPosition maps a score to a position on the track, so that the goal sits at the full width and
// nobody is drawn off the edges.
func TrackPosition(score, goal float64, layout TrackLayout) float64 {
	if !(goal > 0) || math.IsNaN(score) {
		return layout.MinMargin
	}
	return pure_utils.Clamp(score/goal*layout.WidthPercent, layout.MinMargin, layout.MaxMargin)
}
