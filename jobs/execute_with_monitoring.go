package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/checkmarble/challenge-backend/usecases"
	"github.com/checkmarble/challenge-backend/utils"
)

func captureCheckIn(id *sentry.EventID, jobName string, status sentry.CheckInStatus, duration time.Duration) *sentry.EventID {
	checkIn := &sentry.CheckIn{
		MonitorSlug: jobName,
		Status:      status,
		Duration:    duration,
	}
	if id != nil {
		checkIn.ID = *id
	}
	return sentry.CaptureCheckIn(checkIn, nil)
}

// executeWithMonitoring runs a job between two Sentry cron check-ins. Without a Sentry client the
// check-ins are dropped and the job still runs.
func executeWithMonitoring(
	ctx context.Context,
	uc usecases.Usecases,
	jobName string,
	fn func(context.Context, usecases.Usecases) error,
) error {
	logger := utils.LoggerFromContext(ctx).With("job", jobName)
	ctx = utils.StoreLoggerInContext(ctx, logger)
	logger.InfoContext(ctx, fmt.Sprintf("Start job %s", jobName))

	start := time.Now()
	checkinId := captureCheckIn(nil, jobName, sentry.CheckInStatusInProgress, 0)

	err := fn(ctx, uc)
	if err != nil {
		captureCheckIn(checkinId, jobName, sentry.CheckInStatusError, time.Since(start))
		utils.LogAndReportSentryError(ctx, err)
		return errors.Wrapf(err, "error executing job %s", jobName)
	}

	captureCheckIn(checkinId, jobName, sentry.CheckInStatusOK, time.Since(start))
	logger.InfoContext(ctx, fmt.Sprintf("Done executing job %s", jobName))
	return nil
}
