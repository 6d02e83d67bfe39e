package usecases

import (
	"cmp"
	"context"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/pure_utils"
	"github.com/checkmarble/challenge-backend/repositories"
	"github.com/checkmarble/challenge-backend/repositories/clock"
	"github.com/checkmarble/challenge-backend/usecases/leaderboard"
	"github.com/checkmarble/challenge-backend/utils"
)

type LeaderboardUsecase struct {
	repository repositories.LeaderboardRepository
	clock      clock.Clock
	window     models.CampaignWindow
}

// GetLeaderboard ranks the regions on their current score and places them on the race track, relative
// to the goal projected from the leader's pace. Regions come back sorted by display name.
func (usecase LeaderboardUsecase) GetLeaderboard(ctx context.Context) (models.Leaderboard, error) {
	regions, err := usecase.repository.ListRegions(ctx)
	if err != nil {
		return models.Leaderboard{}, err
	}
	return usecase.buildLeaderboard(regions), nil
}

func (usecase LeaderboardUsecase) buildLeaderboard(regions []models.RegionAggregate) models.Leaderboard {
	leaderScore := 0.0
	for _, region := range regions {
		leaderScore = max(leaderScore, region.CurrentScore)
	}
	goal := leaderboard.ProjectGoal(usecase.window, usecase.clock.Now(), leaderScore)
	utils.MetricLeaderboardGoal.Set(goal.ProjectedGoal)

	standings := pure_utils.Map(regions, func(region models.RegionAggregate) models.RegionStanding {
		return models.RegionStanding{
			RegionAggregate: region,
			TrackPosition:   leaderboard.TrackPosition(region.CurrentScore, goal.ProjectedGoal, leaderboard.RegionTrack),
		}
	})

	slices.SortStableFunc(standings, func(a, b models.RegionStanding) int {
		return cmp.Or(
			cmp.Compare(b.CurrentScore, a.CurrentScore),
			compareNames(a.DisplayName(), b.DisplayName()),
		)
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	slices.SortStableFunc(standings, func(a, b models.RegionStanding) int {
		return compareNames(a.DisplayName(), b.DisplayName())
	})

	return models.Leaderboard{Goal: goal, Regions: standings}
}

func compareNames(a, b string) int {
	return cmp.Compare(pure_utils.NormalizeLabel(a), pure_utils.NormalizeLabel(b))
}

// WatchLeaderboard sends the current leaderboard to onUpdate, then a fresh one after every change in
// the store, until ctx is done or onUpdate fails.
func (usecase LeaderboardUsecase) WatchLeaderboard(ctx context.Context, onUpdate func(models.Leaderboard) error) error {
	changes, err := usecase.repository.WatchRegions(ctx)
	if err != nil {
		return err
	}

	board, err := usecase.GetLeaderboard(ctx)
	if err != nil {
		return err
	}
	if err := onUpdate(board); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("leaderboard watch stopped")
			}
			board, err := usecase.GetLeaderboard(ctx)
			if err != nil {
				return err
			}
			if err := onUpdate(board); err != nil {
				return err
			}
		}
	}
}

// ListRegionStores returns the stores of the region's latest snapshot, best first, placed on the store
// race track.
func (usecase LeaderboardUsecase) ListRegionStores(ctx context.Context, regionSlug string) ([]models.StoreStanding, error) {
	if _, err := usecase.repository.GetRegion(ctx, regionSlug); err != nil {
		return nil, err
	}
	stores, err := usecase.repository.ListLatestStoresOfRegion(ctx, regionSlug)
	if err != nil {
		return nil, err
	}

	goal := float64(leaderboard.StoreGoal)
	if len(stores) > 0 && stores[0].Mode == models.ScoringModePoints {
		// points have no fixed scale, the best store sets the finish line
		goal = 0
		for _, store := range stores {
			goal = max(goal, store.Points)
		}
	}

	standings := pure_utils.Map(stores, func(store models.StoreScore) models.StoreStanding {
		return models.StoreStanding{
			StoreScore:    store,
			TrackPosition: leaderboard.TrackPosition(store.Score(), goal, leaderboard.StoreTrack),
		}
	})
	slices.SortStableFunc(standings, func(a, b models.StoreStanding) int {
		return cmp.Or(
			cmp.Compare(b.Score(), a.Score()),
			compareNames(a.StoreName, b.StoreName),
		)
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings, nil
}
