package usecases

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/repositories"
	"github.com/checkmarble/challenge-backend/repositories/clock"
	"github.com/checkmarble/challenge-backend/usecases/sheet"
	"github.com/checkmarble/challenge-backend/utils"
)

const (
	pendingImportsPrefix = "pending/"
	doneImportsPrefix    = "done/"
	failedImportsPrefix  = "failed/"
)

var fileNameDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

type ImportUsecase struct {
	repository      repositories.LeaderboardRepository
	blobRepository  repositories.BlobRepository
	clock           clock.Clock
	location        *time.Location
	importBucketUrl string
	defaultEncoding string
}

// ImportCsv scores one spreadsheet export and commits it as the snapshot of its date. Any error
// returned before the commit leaves the stored leaderboard untouched.
func (usecase ImportUsecase) ImportCsv(ctx context.Context, reader io.Reader, options models.ImportOptions) (models.ImportReport, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "ImportUsecase.ImportCsv",
		trace.WithAttributes(attribute.String("file_name", options.FileName)))
	defer span.End()

	logger := utils.LoggerFromContext(ctx)
	start := time.Now()

	date := options.Date
	if date.IsZero() {
		date = clock.Today(usecase.clock, usecase.location)
	}
	encoding := options.Encoding
	if encoding == "" {
		encoding = usecase.defaultEncoding
	}

	scored, err := usecase.score(ctx, reader, encoding, date)
	if err != nil {
		usecase.recordFailure(scored.Schema, err)
		return models.ImportReport{}, err
	}

	now := usecase.clock.Now()
	batch, err := BuildSnapshotBatch(scored, now)
	if err != nil {
		usecase.recordFailure(scored.Schema, err)
		return models.ImportReport{}, err
	}
	if err := usecase.repository.CommitSnapshot(ctx, batch); err != nil {
		usecase.recordFailure(scored.Schema, err)
		return models.ImportReport{}, errors.Wrap(err, "error committing the import snapshot")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.ImportReport{}, errors.Wrap(err, "error generating the import id")
	}
	report := models.NewImportReport(id, options.FileName, scored, now)

	schema := string(scored.Schema)
	utils.MetricImportCount.WithLabelValues(schema, utils.MetricStatusSuccess).Inc()
	utils.MetricImportLatency.WithLabelValues(schema).Observe(time.Since(start).Seconds())
	utils.MetricImportedStores.WithLabelValues(schema).Add(float64(report.StoresImported))

	logger.InfoContext(ctx, fmt.Sprintf("imported %d stores in %d regions for %s",
		report.StoresImported, report.RegionsImported, date.Format(models.DateFormat)),
		"import_id", report.Id.String(),
		"file_name", options.FileName,
		"schema", schema,
		"header_row", report.HeaderRowIndex,
		"ignored_rows", report.IgnoredRows,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if len(report.DuplicateStores) > 0 {
		logger.WarnContext(ctx, "stores listed more than once, the last row was kept",
			"import_id", report.Id.String(),
			"stores", strings.Join(report.DuplicateStores, ","))
	}
	return report, nil
}

func (usecase ImportUsecase) score(ctx context.Context, reader io.Reader, encoding string, date time.Time) (models.ScoredImport, error) {
	_, span := utils.OpenTelemetryTracerFromContext(ctx).Start(ctx, "ImportUsecase.score")
	defer span.End()

	rows, err := sheet.DecodeRows(reader, encoding)
	if err != nil {
		return models.ScoredImport{}, err
	}
	scored, err := sheet.Score(rows, date)
	if err != nil {
		return models.ScoredImport{}, err
	}
	span.SetAttributes(
		attribute.String("schema", string(scored.Schema)),
		attribute.Int("stores", len(scored.Stores)),
	)
	return scored, nil
}

func (usecase ImportUsecase) recordFailure(schema models.ImportSchema, err error) {
	status := utils.MetricStatusFailed
	if errors.Is(err, models.BadParameterError) {
		status = utils.MetricStatusRejected
	}
	utils.MetricImportCount.WithLabelValues(string(schema), status).Inc()
}

// ImportPendingFromBucket imports every file waiting under pending/ in the import bucket, oldest name
// first. Imported files move to done/, rejected files move to failed/. A storage error stops the run
// and leaves the remaining files pending for the next run.
func (usecase ImportUsecase) ImportPendingFromBucket(ctx context.Context) ([]models.ImportReport, error) {
	logger := utils.LoggerFromContext(ctx)
	if usecase.importBucketUrl == "" {
		return nil, errors.Wrap(models.BadParameterError, "no import bucket configured")
	}

	files, err := usecase.blobRepository.ListFiles(ctx, usecase.importBucketUrl, pendingImportsPrefix)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, fmt.Sprintf("%d files pending import", len(files)))

	reports := make([]models.ImportReport, 0, len(files))
	for _, file := range files {
		report, err := usecase.importBucketFile(ctx, file)
		fileName := path.Base(file.Key)
		switch {
		case errors.Is(err, models.BadParameterError):
			logger.WarnContext(ctx, fmt.Sprintf("file %s rejected: %v", file.Key, err))
			if err := usecase.blobRepository.MoveFile(ctx, usecase.importBucketUrl, file.Key,
				failedImportsPrefix+fileName); err != nil {
				return reports, err
			}
		case err != nil:
			return reports, errors.Wrapf(err, "error importing %s", file.Key)
		default:
			reports = append(reports, report)
			if err := usecase.blobRepository.MoveFile(ctx, usecase.importBucketUrl, file.Key,
				doneImportsPrefix+fileName); err != nil {
				return reports, err
			}
		}
	}
	return reports, nil
}

func (usecase ImportUsecase) importBucketFile(ctx context.Context, file models.BucketFile) (models.ImportReport, error) {
	date, err := usecase.dateFromFileName(file.Key)
	if err != nil {
		return models.ImportReport{}, err
	}

	blob, err := usecase.blobRepository.GetBlob(ctx, usecase.importBucketUrl, file.Key)
	if err != nil {
		return models.ImportReport{}, err
	}
	defer blob.ReadCloser.Close()

	return usecase.ImportCsv(ctx, blob.ReadCloser, models.ImportOptions{
		Date:     date,
		FileName: path.Base(file.Key),
	})
}

// ParseDate reads a YYYY-MM-DD date in the campaign timezone.
func (usecase ImportUsecase) ParseDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(models.DateFormat, value, usecase.location)
	if err != nil {
		return time.Time{}, errors.Wrapf(models.BadParameterError, "invalid date '%s', expected YYYY-MM-DD", value)
	}
	return date, nil
}

// dateFromFileName reads the snapshot date from a YYYY-MM-DD part of the file name. Files without a
// date are imported as of today.
func (usecase ImportUsecase) dateFromFileName(key string) (time.Time, error) {
	match := fileNameDate.FindString(path.Base(key))
	if match == "" {
		return time.Time{}, nil
	}
	date, err := usecase.ParseDate(match)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "in file name %s", key)
	}
	return date, nil
}
