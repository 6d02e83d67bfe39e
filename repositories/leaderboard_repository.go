package repositories

import (
	"context"

	"github.com/guregu/null/v5"

	"github.com/checkmarble/challenge-backend/models"
)

// LeaderboardRepository persists daily store snapshots and region aggregates.
//
// CommitSnapshot is the only write path of imports: every store document of the batch is fully
// replaced and every region document receives a field merge of its score fields, all at once or not at
// all. SetRegionAlias is the only write path of the region alias.
type LeaderboardRepository interface {
	CommitSnapshot(ctx context.Context, batch models.SnapshotBatch) error
	ListRegions(ctx context.Context) ([]models.RegionAggregate, error)
	GetRegion(ctx context.Context, regionSlug string) (models.RegionAggregate, error)
	// ListLatestStoresOfRegion returns the store snapshots of the most recent date imported for the region.
	ListLatestStoresOfRegion(ctx context.Context, regionSlug string) ([]models.StoreScore, error)
	// SetRegionAlias sets the alias, or removes it when alias is not valid. NotFoundError on unknown regions.
	SetRegionAlias(ctx context.Context, regionSlug string, alias null.String) error
	// WatchRegions signals every committed change on regions, until ctx is done. The channel is closed
	// when the watch stops.
	WatchRegions(ctx context.Context) (<-chan struct{}, error)
	// Liveness fails when the backing store cannot be reached.
	Liveness(ctx context.Context) error
}

// notify does a non blocking send: a pending signal already tells the subscriber to reload.
func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
