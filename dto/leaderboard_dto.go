package dto

import (
	"time"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/pure_utils"
)

type APIGoal struct {
	ElapsedFraction float64 `json:"elapsed_fraction"`
	LeaderScore     float64 `json:"leader_score"`
	ProjectedGoal   float64 `json:"projected_goal"`
	EarlyCampaign   bool    `json:"early_campaign"`
}

type APIRegionStanding struct {
	APIRegion
	Rank          int     `json:"rank"`
	TrackPosition float64 `json:"track_position"`
}

type APILeaderboard struct {
	Goal    APIGoal             `json:"goal"`
	Regions []APIRegionStanding `json:"regions"`
}

func AdaptLeaderboardDto(board models.Leaderboard) APILeaderboard {
	return APILeaderboard{
		Goal: APIGoal{
			ElapsedFraction: pure_utils.Round2(board.Goal.ElapsedFraction),
			LeaderScore:     board.Goal.LeaderScore,
			ProjectedGoal:   pure_utils.Round2(board.Goal.ProjectedGoal),
			EarlyCampaign:   board.Goal.EarlyCampaign,
		},
		Regions: pure_utils.Map(board.Regions, func(standing models.RegionStanding) APIRegionStanding {
			return APIRegionStanding{
				APIRegion:     AdaptRegionDto(standing.RegionAggregate),
				Rank:          standing.Rank,
				TrackPosition: pure_utils.Round2(standing.TrackPosition),
			}
		}),
	}
}

type APIMetricDetail struct {
	Actual   float64  `json:"actual"`
	Target   float64  `json:"target"`
	Previous float64  `json:"previous"`
	Percent  *float64 `json:"percent"`
}

type APIStoreStanding struct {
	Slug          string                     `json:"slug"`
	Name          string                     `json:"name"`
	RegionSlug    string                     `json:"region_slug"`
	Date          string                     `json:"date"`
	ScoringMode   string                     `json:"scoring_mode"`
	PercentObj    float64                    `json:"percent_obj"`
	PercentProg   float64                    `json:"percent_prog"`
	Points        float64                    `json:"points"`
	Details       map[string]APIMetricDetail `json:"details"`
	LastUpdated   time.Time                  `json:"last_updated"`
	Rank          int                        `json:"rank"`
	TrackPosition float64                    `json:"track_position"`
}

func AdaptStoreStandingDto(standing models.StoreStanding) APIStoreStanding {
	details := make(map[string]APIMetricDetail, len(standing.Metrics))
	for metric, sample := range standing.Metrics {
		detail := APIMetricDetail{
			Actual:   sample.Actual,
			Target:   sample.Target,
			Previous: sample.Previous,
		}
		if percent, ok := standing.Achievements[metric]; ok {
			detail.Percent = &percent
		}
		details[string(metric)] = detail
	}

	return APIStoreStanding{
		Slug:          standing.StoreSlug,
		Name:          standing.StoreName,
		RegionSlug:    standing.RegionSlug,
		Date:          standing.Date.Format(models.DateFormat),
		ScoringMode:   string(standing.Mode),
		PercentObj:    standing.GlobalPercent,
		PercentProg:   standing.ProgressPercent,
		Points:        standing.Points,
		Details:       details,
		LastUpdated:   standing.LastUpdated,
		Rank:          standing.Rank,
		TrackPosition: pure_utils.Round2(standing.TrackPosition),
	}
}
