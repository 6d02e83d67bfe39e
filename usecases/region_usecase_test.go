package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/challenge-backend/mocks"
	"github.com/checkmarble/challenge-backend/models"
)

func TestSetRegionAlias(t *testing.T) {
	ctx := context.Background()
	repository := new(mocks.LeaderboardRepository)
	updated := region("nord", "Nord", 80)
	updated.Alias = null.StringFrom("Les Ch'tis")
	repository.On("SetRegionAlias", ctx, "nord", null.StringFrom("Les Ch'tis")).Return(nil)
	repository.On("GetRegion", ctx, "nord").Return(updated, nil)

	result, err := RegionUsecase{repository: repository}.SetRegionAlias(ctx, "nord", "  Les Ch'tis ")

	require.NoError(t, err)
	assert.Equal(t, "Les Ch'tis", result.DisplayName())
	repository.AssertExpectations(t)
}

func TestSetRegionAlias_empty_alias_clears(t *testing.T) {
	ctx := context.Background()
	repository := new(mocks.LeaderboardRepository)
	repository.On("SetRegionAlias", ctx, "nord", null.String{}).Return(nil)
	repository.On("GetRegion", ctx, "nord").Return(region("nord", "Nord", 80), nil)

	result, err := RegionUsecase{repository: repository}.SetRegionAlias(ctx, "nord", "   ")

	require.NoError(t, err)
	assert.Equal(t, "Nord", result.DisplayName())
	repository.AssertExpectations(t)
}

func TestSetRegionAlias_too_long(t *testing.T) {
	repository := new(mocks.LeaderboardRepository)

	_, err := RegionUsecase{repository: repository}.SetRegionAlias(context.Background(), "nord",
		strings.Repeat("é", 51))

	assert.ErrorIs(t, err, models.BadParameterError)
	repository.AssertNotCalled(t, "SetRegionAlias", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetRegionAlias_unknown_region(t *testing.T) {
	ctx := context.Background()
	repository := new(mocks.LeaderboardRepository)
	repository.On("SetRegionAlias", ctx, "ouest", null.StringFrom("West")).
		Return(errors.Wrap(models.NotFoundError, "region ouest"))

	_, err := RegionUsecase{repository: repository}.SetRegionAlias(ctx, "ouest", "West")

	assert.ErrorIs(t, err, models.NotFoundError)
	repository.AssertNotCalled(t, "GetRegion", ctx, "ouest")
}
