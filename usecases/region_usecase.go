package usecases

import (
	"context"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/pure_utils"
	"github.com/checkmarble/challenge-backend/repositories"
)

const maxAliasLength = 50

type RegionUsecase struct {
	repository repositories.LeaderboardRepository
}

// SetRegionAlias changes the name a region is displayed under. An empty alias restores the region name.
func (usecase RegionUsecase) SetRegionAlias(ctx context.Context, regionSlug, alias string) (models.RegionAggregate, error) {
	alias = pure_utils.CleanCell(alias)
	if utf8.RuneCountInString(alias) > maxAliasLength {
		return models.RegionAggregate{}, errors.Wrapf(models.BadParameterError,
			"alias is longer than %d characters", maxAliasLength)
	}

	value := null.NewString(alias, alias != "")
	if err := usecase.repository.SetRegionAlias(ctx, regionSlug, value); err != nil {
		return models.RegionAggregate{}, err
	}
	return usecase.repository.GetRegion(ctx, regionSlug)
}
