package leaderboard

import (
	"time"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/pure_utils"
)

const (
	// elapsed fraction floor, keeps the projection finite at the very start of the campaign
	minElapsedFraction = 0.001
	// below this elapsed fraction the leader's pace is too noisy to be extrapolated
	earlyCampaignThreshold = 0.05
	earlyCampaignFactor    = 20
	// the goal stays slightly ahead of the leader's extrapolated pace
	goalMargin = 1.05
)

// ProjectGoal extrapolates the end of campaign score from the leader's current score and the elapsed
// share of the campaign. The leader score is floored to 1 so that a campaign where nobody scored yet
// still has a positive goal.
func ProjectGoal(window models.CampaignWindow, now time.Time, leaderScore float64) models.GoalProjection {
	elapsed := elapsedFraction(window, now)
	leader := leaderScore
	if !(leader > 0) {
		leader = 1
	}

	if elapsed < earlyCampaignThreshold {
		return models.GoalProjection{
			ElapsedFraction: elapsed,
			LeaderScore:     leaderScore,
			ProjectedGoal:   leader * earlyCampaignFactor,
			EarlyCampaign:   true,
		}
	}
	return models.GoalProjection{
		ElapsedFraction: elapsed,
		LeaderScore:     leaderScore,
		ProjectedGoal:   leader / elapsed * goalMargin,
	}
}

func elapsedFraction(window models.CampaignWindow, now time.Time) float64 {
	total := window.End.Sub(window.Start)
	if total <= 0 {
		return 1
	}
	elapsed := float64(now.Sub(window.Start)) / float64(total)
	return pure_utils.Clamp(elapsed, minElapsedFraction, 1)
}
