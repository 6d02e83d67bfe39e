package jobs

import (
	"context"

	"github.com/adhocore/gronx"
	"github.com/adhocore/gronx/pkg/tasker"
	"github.com/cockroachdb/errors"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/usecases"
)

const DefaultImportSchedule = "*/15 * * * *"

func errToReturnCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

func ValidateSchedule(schedule string) error {
	if !gronx.IsValid(schedule) {
		return errors.Wrapf(models.BadParameterError, "invalid cron expression '%s'", schedule)
	}
	return nil
}

// RunScheduler imports the pending bucket files on the given cron schedule, until ctx is done.
func RunScheduler(ctx context.Context, uc usecases.Usecases, schedule, timezone string) error {
	if err := ValidateSchedule(schedule); err != nil {
		return err
	}

	taskr := tasker.New(tasker.Option{
		Verbose: true,
		Tz:      timezone,
	}).WithContext(ctx)

	notConcurrent := false
	taskr.Task(schedule, func(ctx context.Context) (int, error) {
		err := ImportFromBucket(ctx, uc)
		return errToReturnCode(err), err
	}, notConcurrent)

	taskr.Run()
	return nil
}
