package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/checkmarble/challenge-backend/dto"
	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/usecases"
	"github.com/checkmarble/challenge-backend/utils"
)

const leaderboardEvent = "leaderboard"

func handleGetLeaderboard(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := uc.NewLeaderboardUsecase()
		board, err := usecase.GetLeaderboard(ctx)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptLeaderboardDto(board))
	}
}

// handleStreamLeaderboard sends the leaderboard as server sent events: once on connection, then after
// every change, until the client goes away.
func handleStreamLeaderboard(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		usecase := uc.NewLeaderboardUsecase()
		err := usecase.WatchLeaderboard(ctx, func(board models.Leaderboard) error {
			c.SSEvent(leaderboardEvent, dto.AdaptLeaderboardDto(board))
			c.Writer.Flush()
			return ctx.Err()
		})
		if err == nil || ctx.Err() != nil {
			return
		}
		if !c.Writer.Written() {
			presentError(ctx, c, err)
			return
		}
		utils.LogAndReportSentryError(ctx, err)
	}
}
