package dto

import (
	"time"

	"github.com/checkmarble/challenge-backend/models"
)

type APIRegion struct {
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	Pseudo           *string   `json:"pseudo"`
	DisplayName      string    `json:"display_name"`
	ScoringMode      string    `json:"scoring_mode"`
	CurrentScoreObj  float64   `json:"current_score_obj"`
	CurrentScoreProg float64   `json:"current_score_prog"`
	NbStores         int       `json:"nb_stores"`
	LastUpdate       time.Time `json:"last_update"`
}

func AdaptRegionDto(region models.RegionAggregate) APIRegion {
	return APIRegion{
		Slug:             region.RegionSlug,
		Name:             region.RegionName,
		Pseudo:           region.Alias.Ptr(),
		DisplayName:      region.DisplayName(),
		ScoringMode:      string(region.Mode),
		CurrentScoreObj:  region.CurrentScore,
		CurrentScoreProg: region.ProgressPercent,
		NbStores:         region.StoreCount,
		LastUpdate:       region.LastUpdate,
	}
}

// An empty pseudo removes the alias.
type UpdateRegionBody struct {
	Pseudo *string `json:"pseudo" binding:"required"`
}
