package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/usecases"
	"github.com/checkmarble/challenge-backend/utils"
)

const importFromBucketJobName = "import_from_bucket"

var (
	importAttempts   uint = 3
	importRetryDelay      = 2 * time.Second
)

// ImportFromBucket imports the files waiting in the import bucket. Storage errors are retried with a
// backoff; a rejected file is never retried, it has already been moved to failed/.
func ImportFromBucket(ctx context.Context, uc usecases.Usecases) error {
	return executeWithMonitoring(ctx, uc, importFromBucketJobName, importFromBucket)
}

func importFromBucket(ctx context.Context, uc usecases.Usecases) error {
	logger := utils.LoggerFromContext(ctx)
	usecase := uc.NewImportUsecase()

	imported := 0
	err := retry.Do(
		func() error {
			reports, err := usecase.ImportPendingFromBucket(ctx)
			imported += len(reports)
			return err
		},
		retry.Attempts(importAttempts),
		retry.Delay(importRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, models.BadParameterError)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.WarnContext(ctx, fmt.Sprintf("bucket import attempt %d failed, retrying: %v", n+1, err))
		}),
	)
	logger.InfoContext(ctx, fmt.Sprintf("%d files imported from the bucket", imported))
	return err
}
