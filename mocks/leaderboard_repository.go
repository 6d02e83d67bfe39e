package mocks

import (
	"context"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/mock"

	"github.com/checkmarble/challenge-backend/models"
)

type LeaderboardRepository struct {
	mock.Mock
}

func (m *LeaderboardRepository) CommitSnapshot(ctx context.Context, batch models.SnapshotBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *LeaderboardRepository) ListRegions(ctx context.Context) ([]models.RegionAggregate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.RegionAggregate), args.Error(1)
}

func (m *LeaderboardRepository) GetRegion(ctx context.Context, regionSlug string) (models.RegionAggregate, error) {
	args := m.Called(ctx, regionSlug)
	return args.Get(0).(models.RegionAggregate), args.Error(1)
}

func (m *LeaderboardRepository) ListLatestStoresOfRegion(ctx context.Context, regionSlug string) ([]models.StoreScore, error) {
	args := m.Called(ctx, regionSlug)
	return args.Get(0).([]models.StoreScore), args.Error(1)
}

func (m *LeaderboardRepository) SetRegionAlias(ctx context.Context, regionSlug string, alias null.String) error {
	args := m.Called(ctx, regionSlug, alias)
	return args.Error(0)
}

func (m *LeaderboardRepository) WatchRegions(ctx context.Context) (<-chan struct{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan struct{}), args.Error(1)
}

func (m *LeaderboardRepository) Liveness(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
