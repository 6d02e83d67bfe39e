package repositories

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"

	"github.com/checkmarble/challenge-backend/models"
)

type memoryLeaderboardState struct {
	stores  map[string]models.StoreScore
	regions map[string]models.RegionAggregate
}

// MemoryLeaderboardRepository keeps the leaderboard in process memory. Writes build a new state and
// swap it under the lock, so readers only ever see whole batches.
type MemoryLeaderboardRepository struct {
	mu          sync.RWMutex
	state       *memoryLeaderboardState
	subscribers map[chan struct{}]struct{}
}

func NewMemoryLeaderboardRepository() *MemoryLeaderboardRepository {
	return &MemoryLeaderboardRepository{
		state: &memoryLeaderboardState{
			stores:  make(map[string]models.StoreScore),
			regions: make(map[string]models.RegionAggregate),
		},
		subscribers: make(map[chan struct{}]struct{}),
	}
}

func (repo *MemoryLeaderboardRepository) CommitSnapshot(ctx context.Context, batch models.SnapshotBatch) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	next := &memoryLeaderboardState{
		stores:  maps.Clone(repo.state.stores),
		regions: maps.Clone(repo.state.regions),
	}
	for _, store := range batch.StoreReplacements {
		next.stores[store.DocumentId()] = store
	}
	for _, update := range batch.RegionMerges {
		region := next.regions[update.RegionSlug]
		region.RegionScoreUpdate = update
		next.regions[update.RegionSlug] = region
	}
	repo.state = next

	for subscriber := range repo.subscribers {
		notify(subscriber)
	}
	return nil
}

func (repo *MemoryLeaderboardRepository) snapshot() *memoryLeaderboardState {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return repo.state
}

func (repo *MemoryLeaderboardRepository) ListRegions(ctx context.Context) ([]models.RegionAggregate, error) {
	state := repo.snapshot()
	regions := slices.Collect(maps.Values(state.regions))
	slices.SortFunc(regions, func(a, b models.RegionAggregate) int {
		return strings.Compare(a.RegionSlug, b.RegionSlug)
	})
	return regions, nil
}

func (repo *MemoryLeaderboardRepository) GetRegion(ctx context.Context, regionSlug string) (models.RegionAggregate, error) {
	region, ok := repo.snapshot().regions[regionSlug]
	if !ok {
		return models.RegionAggregate{}, errors.Wrapf(models.NotFoundError, "region %s", regionSlug)
	}
	return region, nil
}

func (repo *MemoryLeaderboardRepository) ListLatestStoresOfRegion(ctx context.Context, regionSlug string) ([]models.StoreScore, error) {
	state := repo.snapshot()

	stores := make([]models.StoreScore, 0)
	for _, store := range state.stores {
		if store.RegionSlug != regionSlug {
			continue
		}
		if len(stores) > 0 && store.Date.Before(stores[0].Date) {
			continue
		}
		if len(stores) > 0 && store.Date.After(stores[0].Date) {
			stores = stores[:0]
		}
		stores = append(stores, store)
	}
	slices.SortFunc(stores, func(a, b models.StoreScore) int {
		return strings.Compare(a.StoreSlug, b.StoreSlug)
	})
	return stores, nil
}

func (repo *MemoryLeaderboardRepository) SetRegionAlias(ctx context.Context, regionSlug string, alias null.String) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	region, ok := repo.state.regions[regionSlug]
	if !ok {
		return errors.Wrapf(models.NotFoundError, "region %s", regionSlug)
	}
	region.Alias = alias
	next := &memoryLeaderboardState{
		stores:  repo.state.stores,
		regions: maps.Clone(repo.state.regions),
	}
	next.regions[regionSlug] = region
	repo.state = next

	for subscriber := range repo.subscribers {
		notify(subscriber)
	}
	return nil
}

func (repo *MemoryLeaderboardRepository) Liveness(ctx context.Context) error {
	return nil
}

func (repo *MemoryLeaderboardRepository) WatchRegions(ctx context.Context) (<-chan struct{}, error) {
	signals := make(chan struct{}, 1)
	repo.mu.Lock()
	repo.subscribers[signals] = struct{}{}
	repo.mu.Unlock()

	out := make(chan struct{})
	go func() {
		defer close(out)
		defer func() {
			repo.mu.Lock()
			delete(repo.subscribers, signals)
			repo.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
				select {
				case out <- struct{}{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
