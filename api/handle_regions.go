package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/checkmarble/challenge-backend/dto"
	"github.com/checkmarble/challenge-backend/pure_utils"
	"github.com/checkmarble/challenge-backend/usecases"
)

type RegionSlugUriInput struct {
	RegionSlug string `uri:"region_slug" binding:"required"`
}

func handleListRegionStores(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var input RegionSlugUriInput
		if err := c.ShouldBindUri(&input); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := uc.NewLeaderboardUsecase()
		stores, err := usecase.ListRegionStores(ctx, input.RegionSlug)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"stores": pure_utils.Map(stores, dto.AdaptStoreStandingDto)})
	}
}

func handlePatchRegion(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var input RegionSlugUriInput
		if err := c.ShouldBindUri(&input); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		var body dto.UpdateRegionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, bindingError(err))
			return
		}

		usecase := uc.NewRegionUsecase()
		region, err := usecase.SetRegionAlias(ctx, input.RegionSlug, *body.Pseudo)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"region": dto.AdaptRegionDto(region)})
	}
}
