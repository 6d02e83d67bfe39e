package jobs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/repositories"
	"github.com/checkmarble/challenge-backend/usecases"
)

const weeklyExport = `Région;Magasin;CA N;Budget
Nord;BUT Lille;12 500,00;10 000,00
Sud;BUT Nîmes;5 000,00;10 000,00
`

func TestImportFromBucket(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pending"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pending", "2025-03-14.csv"), []byte(weeklyExport), 0o644))

	repos, err := repositories.NewRepositories()
	require.NoError(t, err)
	uc := usecases.NewUsecases(repos, usecases.WithImportBucketUrl("file://"+dir))

	require.NoError(t, ImportFromBucket(ctx, uc))

	assert.FileExists(t, filepath.Join(dir, "done", "2025-03-14.csv"))
	regions, err := repos.LeaderboardRepository.ListRegions(ctx)
	require.NoError(t, err)
	assert.Len(t, regions, 2)
}

func TestImportFromBucket_no_bucket_is_not_retried(t *testing.T) {
	repos, err := repositories.NewRepositories()
	require.NoError(t, err)

	err = ImportFromBucket(context.Background(), usecases.NewUsecases(repos))

	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestImportFromBucket_retries_storage_errors(t *testing.T) {
	previousDelay := importRetryDelay
	importRetryDelay = time.Millisecond
	t.Cleanup(func() { importRetryDelay = previousDelay })

	repos, err := repositories.NewRepositories()
	require.NoError(t, err)
	missing := "file://" + filepath.Join(t.TempDir(), "missing")
	uc := usecases.NewUsecases(repos, usecases.WithImportBucketUrl(missing))

	start := time.Now()
	err = ImportFromBucket(context.Background(), uc)

	require.Error(t, err)
	assert.NotErrorIs(t, err, models.BadParameterError)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule(DefaultImportSchedule))
	assert.NoError(t, ValidateSchedule("0 7 * * 1-5"))
	assert.ErrorIs(t, ValidateSchedule("every morning"), models.BadParameterError)
}
