package leaderboard

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/checkmarble/challenge-backend/models"
)

var window = models.CampaignWindow{
	Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC),
}

// at returns the instant at which the given fraction of the campaign has elapsed
func at(fraction float64) time.Time {
	return window.Start.Add(time.Duration(fraction * float64(window.End.Sub(window.Start))))
}

func TestProjectGoal_MidCampaign(t *testing.T) {
	goal := ProjectGoal(window, at(0.5), 50)

	assert.False(t, goal.EarlyCampaign)
	assert.InDelta(t, 0.5, goal.ElapsedFraction, 1e-9)
	assert.InDelta(t, 105, goal.ProjectedGoal, 1e-9)
	assert.Equal(t, 50.0, goal.LeaderScore)
}

func TestProjectGoal_EarlyCampaign(t *testing.T) {
	goal := ProjectGoal(window, at(0.01), 30)

	assert.True(t, goal.EarlyCampaign)
	assert.Equal(t, 600.0, goal.ProjectedGoal)
}

func TestProjectGoal_JustAfterEarlyThreshold(t *testing.T) {
	goal := ProjectGoal(window, at(0.051), 1000)

	assert.False(t, goal.EarlyCampaign)
	assert.Greater(t, goal.ProjectedGoal, 1000.0)
}

func TestProjectGoal_NoScoreYet(t *testing.T) {
	for _, leader := range []float64{0, -5, math.NaN()} {
		goal := ProjectGoal(window, at(0.5), leader)
		assert.InDelta(t, 2.1, goal.ProjectedGoal, 1e-9)
		assert.False(t, math.IsInf(goal.ProjectedGoal, 0))
	}
}

func TestProjectGoal_OutsideWindow(t *testing.T) {
	before := ProjectGoal(window, window.Start.Add(-48*time.Hour), 10)
	assert.Equal(t, 0.001, before.ElapsedFraction)
	assert.True(t, before.EarlyCampaign)

	after := ProjectGoal(window, window.End.Add(48*time.Hour), 10)
	assert.Equal(t, 1.0, after.ElapsedFraction)
	assert.InDelta(t, 10.5, after.ProjectedGoal, 1e-9)
}

func TestProjectGoal_EmptyWindow(t *testing.T) {
	goal := ProjectGoal(models.CampaignWindow{Start: window.Start, End: window.Start}, window.Start, 10)
	assert.Equal(t, 1.0, goal.ElapsedFraction)
	assert.InDelta(t, 10.5, goal.ProjectedGoal, 1e-9)
}
