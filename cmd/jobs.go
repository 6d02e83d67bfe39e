package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/checkmarble/challenge-backend/infra"
	"github.com/checkmarble/challenge-backend/jobs"
	"github.com/checkmarble/challenge-backend/usecases"
	"github.com/checkmarble/challenge-backend/usecases/sheet"
	"github.com/checkmarble/challenge-backend/utils"
)

type jobDependencies struct {
	ctx      context.Context
	usecases usecases.Usecases
	timezone string
	close    func()
}

// initJobDependencies sets up what the bucket import jobs share: logger, Sentry, traces and the
// leaderboard storage.
func initJobDependencies(config CompiledConfig) (jobDependencies, error) {
	jobConfig := struct {
		env             string
		storeBackend    string
		sentryDsn       string
		importBucketUrl string
		csvEncoding     string
	}{
		env:             utils.GetEnv("ENV", "development"),
		storeBackend:    utils.GetEnv("STORE_BACKEND", "firestore"),
		sentryDsn:       utils.GetEnv("SENTRY_DSN", ""),
		importBucketUrl: utils.GetRequiredEnv[string]("IMPORT_BUCKET_URL"),
		csvEncoding:     utils.GetEnv("CSV_ENCODING", sheet.EncodingAuto),
	}

	logger := newLogger()
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	campaign, err := readCampaignConfig(false)
	if err != nil {
		return jobDependencies{}, err
	}
	gcpConfig := readGcpConfig(ctx)

	infra.SetupSentry(jobConfig.sentryDsn, jobConfig.env, config.Version)

	tracingConfig, err := readTelemetryConfig(gcpConfig)
	if err != nil {
		return jobDependencies{}, err
	}
	telemetryRessources, err := infra.InitTelemetry(ctx, tracingConfig, config.Version)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		telemetryRessources = infra.NoopTelemetry()
	}
	ctx = utils.StoreOpenTelemetryTracerInContext(ctx, telemetryRessources.Tracer)

	repos, closeRepositories, err := initRepositories(ctx, jobConfig.storeBackend, gcpConfig, readPgConfig())
	if err != nil {
		return jobDependencies{}, err
	}

	uc := usecases.NewUsecases(repos,
		usecases.WithCampaign(campaign),
		usecases.WithImportBucketUrl(jobConfig.importBucketUrl),
		usecases.WithDefaultEncoding(jobConfig.csvEncoding),
	)
	return jobDependencies{
		ctx:      ctx,
		usecases: uc,
		timezone: campaign.Location.String(),
		close: func() {
			closeRepositories()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = telemetryRessources.Shutdown(shutdownCtx)
			sentry.Flush(3 * time.Second)
		},
	}, nil
}

// RunBatchImport imports the pending bucket files once and exits, for a scheduled Cloud Run job.
func RunBatchImport(config CompiledConfig) error {
	deps, err := initJobDependencies(config)
	if err != nil {
		return err
	}
	defer deps.close()

	ctx, stop := signal.NotifyContext(deps.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return jobs.ImportFromBucket(ctx, deps.usecases)
}

// RunJobScheduler keeps running and imports the pending bucket files on IMPORT_SCHEDULE.
func RunJobScheduler(config CompiledConfig) error {
	schedule := utils.GetEnv("IMPORT_SCHEDULE", jobs.DefaultImportSchedule)
	if err := jobs.ValidateSchedule(schedule); err != nil {
		return err
	}

	deps, err := initJobDependencies(config)
	if err != nil {
		return err
	}
	defer deps.close()

	ctx, stop := signal.NotifyContext(deps.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	utils.LoggerFromContext(ctx).InfoContext(ctx, "starting the import scheduler",
		slog.String("schedule", schedule), slog.String("timezone", deps.timezone))
	return jobs.RunScheduler(ctx, deps.usecases, schedule, deps.timezone)
}
