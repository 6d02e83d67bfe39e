package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/checkmarble/challenge-backend/dto"
	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/utils"
)

var importErrorCodes = []struct {
	err  error
	code dto.ErrorCode
}{
	{models.ErrHeaderNotFound, dto.HeaderNotFound},
	{models.ErrRequiredColumnMissing, dto.RequiredColumnMissing},
	{models.ErrNoDataFound, dto.NoDataFound},
	{models.ErrUnknownEncoding, dto.UnknownEncoding},
}

func errorCode(err error) dto.ErrorCode {
	for _, known := range importErrorCodes {
		if errors.Is(err, known.err) {
			return known.code
		}
	}
	return ""
}

func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	logger := utils.LoggerFromContext(ctx)

	switch {
	case errors.Is(err, models.BadParameterError):
		logger.InfoContext(ctx, fmt.Sprintf("BadParameterError: %v", err))
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error(), ErrorCode: errorCode(err)})
	case errors.Is(err, models.NotFoundError):
		logger.InfoContext(ctx, fmt.Sprintf("NotFoundError: %v", err))
		c.JSON(http.StatusNotFound, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ConflictError):
		logger.InfoContext(ctx, fmt.Sprintf("ConflictError: %v", err))
		c.JSON(http.StatusConflict, dto.APIErrorResponse{Message: err.Error()})
	default:
		utils.LogAndReportSentryError(ctx, err)
		c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{
			Message: "An unexpected error occurred. Please try again later, or contact support if the problem persists.",
		})
	}
	return true
}
