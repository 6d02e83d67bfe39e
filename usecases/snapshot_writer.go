package usecases

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/checkmarble/challenge-backend/models"
)

// BuildSnapshotBatch turns a scored import into the two write sets of the store: one full replace per
// store snapshot, one score merge per region. An import without any store is rejected, so that a file
// with the right header but no data cannot blank the leaderboard.
func BuildSnapshotBatch(scored models.ScoredImport, now time.Time) (models.SnapshotBatch, error) {
	if len(scored.Stores) == 0 {
		return models.SnapshotBatch{}, errors.Wrapf(models.ErrNoDataFound,
			"%d rows read below the header row", scored.RowsRead)
	}

	stores := make([]models.StoreScore, len(scored.Stores))
	for i, store := range scored.Stores {
		store.LastUpdated = now
		stores[i] = store
	}
	regions := make([]models.RegionScoreUpdate, len(scored.Regions))
	copy(regions, scored.Regions)

	return models.SnapshotBatch{
		Date:              scored.Date,
		StoreReplacements: stores,
		RegionMerges:      regions,
	}, nil
}
