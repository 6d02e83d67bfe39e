package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/challenge-backend/models"
)

var (
	day1 = time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
)

func storeScore(slug, regionSlug string, date time.Time, percent float64) models.StoreScore {
	return models.StoreScore{
		StoreSlug:     slug,
		StoreName:     slug,
		RegionSlug:    regionSlug,
		RegionName:    regionSlug,
		Date:          date,
		Mode:          models.ScoringModeRatio,
		GlobalPercent: percent,
	}
}

func regionUpdate(slug string, score float64, date time.Time) models.RegionScoreUpdate {
	return models.RegionScoreUpdate{
		RegionSlug:   slug,
		RegionName:   slug,
		Mode:         models.ScoringModeRatio,
		CurrentScore: score,
		StoreCount:   1,
		LastUpdate:   date,
	}
}

func TestMemoryLeaderboardRepository_CommitAndRead(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeaderboardRepository()

	require.NoError(t, repo.CommitSnapshot(ctx, models.SnapshotBatch{
		Date: day1,
		StoreReplacements: []models.StoreScore{
			storeScore("storea", "nord", day1, 40),
			storeScore("storeb", "nord", day1, 60),
		},
		RegionMerges: []models.RegionScoreUpdate{regionUpdate("nord", 50, day1)},
	}))
	require.NoError(t, repo.CommitSnapshot(ctx, models.SnapshotBatch{
		Date:              day2,
		StoreReplacements: []models.StoreScore{storeScore("storea", "nord", day2, 70)},
		RegionMerges:      []models.RegionScoreUpdate{regionUpdate("nord", 70, day2)},
	}))

	regions, err := repo.ListRegions(ctx)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, 70.0, regions[0].CurrentScore)

	stores, err := repo.ListLatestStoresOfRegion(ctx, "nord")
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, day2, stores[0].Date)

	stores, err = repo.ListLatestStoresOfRegion(ctx, "sud")
	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestMemoryLeaderboardRepository_ImportKeepsAlias(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeaderboardRepository()
	batch := models.SnapshotBatch{
		Date:              day1,
		StoreReplacements: []models.StoreScore{storeScore("storea", "nord", day1, 40)},
		RegionMerges:      []models.RegionScoreUpdate{regionUpdate("nord", 40, day1)},
	}

	require.NoError(t, repo.CommitSnapshot(ctx, batch))
	require.NoError(t, repo.SetRegionAlias(ctx, "nord", null.StringFrom("Les Ch'tis")))
	require.NoError(t, repo.CommitSnapshot(ctx, batch))

	region, err := repo.GetRegion(ctx, "nord")
	require.NoError(t, err)
	assert.Equal(t, null.StringFrom("Les Ch'tis"), region.Alias)
	assert.Equal(t, "Les Ch'tis", region.DisplayName())

	require.NoError(t, repo.SetRegionAlias(ctx, "nord", null.String{}))
	region, err = repo.GetRegion(ctx, "nord")
	require.NoError(t, err)
	assert.False(t, region.Alias.Valid)
	assert.Equal(t, "nord", region.DisplayName())
}

func TestMemoryLeaderboardRepository_UnknownRegion(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeaderboardRepository()

	_, err := repo.GetRegion(ctx, "nord")
	assert.ErrorIs(t, err, models.NotFoundError)
	assert.ErrorIs(t, repo.SetRegionAlias(ctx, "nord", null.StringFrom("x")), models.NotFoundError)
}

func TestMemoryLeaderboardRepository_ReadersSeeWholeBatches(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLeaderboardRepository()

	const batchSize = 50
	batch := models.SnapshotBatch{Date: day1}
	for i := 0; i < batchSize; i++ {
		batch.StoreReplacements = append(batch.StoreReplacements,
			storeScore(string(rune('a'+i%26))+string(rune('a'+i/26)), "nord", day1, float64(i)))
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			stores, err := repo.ListLatestStoresOfRegion(ctx, "nord")
			assert.NoError(t, err)
			assert.Contains(t, []int{0, batchSize}, len(stores))
		}
	}()
	require.NoError(t, repo.CommitSnapshot(ctx, batch))
	wg.Wait()
}

func TestMemoryLeaderboardRepository_WatchRegions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := NewMemoryLeaderboardRepository()

	changes, err := repo.WatchRegions(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.CommitSnapshot(ctx, models.SnapshotBatch{
		Date:         day1,
		RegionMerges: []models.RegionScoreUpdate{regionUpdate("nord", 40, day1)},
	}))

	select {
	case _, ok := <-changes:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("no change signaled after a commit")
	}

	cancel()
	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("watch not stopped after cancel")
	}
}
