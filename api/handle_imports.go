package api

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/checkmarble/challenge-backend/dto"
	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/usecases"
)

func handlePostImport(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var form dto.ImportForm
		if err := c.ShouldBind(&form); err != nil {
			if c.IsAborted() {
				// the size limiter already answered
				return
			}
			presentError(ctx, c, bindingError(err))
			return
		}
		fileHeader, err := c.FormFile("file")
		if err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "the csv export is expected in the 'file' form field"))
			return
		}
		file, err := fileHeader.Open()
		if presentError(ctx, c, errors.Wrap(err, "error opening the uploaded file")) {
			return
		}
		defer file.Close()

		usecase := uc.NewImportUsecase()
		var date time.Time
		if form.Date != "" {
			date, err = usecase.ParseDate(form.Date)
			if presentError(ctx, c, err) {
				return
			}
		}

		report, err := usecase.ImportCsv(ctx, file, models.ImportOptions{
			Date:     date,
			Encoding: form.Encoding,
			FileName: fileHeader.Filename,
		})
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"import": dto.AdaptImportReportDto(report)})
	}
}
