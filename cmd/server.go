package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"

	"github.com/checkmarble/challenge-backend/api"
	"github.com/checkmarble/challenge-backend/api/middleware"
	"github.com/checkmarble/challenge-backend/infra"
	"github.com/checkmarble/challenge-backend/usecases"
	"github.com/checkmarble/challenge-backend/usecases/sheet"
	"github.com/checkmarble/challenge-backend/utils"
)

const shutdownTimeout = 10 * time.Second

func RunServer(config CompiledConfig) error {
	apiConfig := api.Configuration{
		Env:                 utils.GetEnv("ENV", "development"),
		AppName:             appName,
		AppVersion:          config.Version,
		Port:                utils.GetRequiredEnv[string]("PORT"),
		FrontendUrl:         utils.GetEnv("FRONTEND_URL", ""),
		RequestLoggingLevel: utils.GetEnv("REQUEST_LOGGING_LEVEL", middleware.RequestLoggingAll),
		MaxUploadSizeMb:     int64(utils.GetEnv("MAX_UPLOAD_SIZE_MB", 10)),
		ImportTimeout:       time.Duration(utils.GetEnv("IMPORT_TIMEOUT_SECOND", 55)) * time.Second,
		DefaultTimeout:      time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 10)) * time.Second,
		Profiling: utils.ProfilingConfig{
			Mode:  utils.GetEnv("DEBUG_PROFILING_MODE", ""),
			Token: utils.GetEnv("DEBUG_PROFILING_TOKEN", ""),
		},
	}
	serverConfig := struct {
		storeBackend    string
		sentryDsn       string
		importBucketUrl string
		csvEncoding     string
	}{
		storeBackend:    utils.GetEnv("STORE_BACKEND", "firestore"),
		sentryDsn:       utils.GetEnv("SENTRY_DSN", ""),
		importBucketUrl: utils.GetEnv("IMPORT_BUCKET_URL", ""),
		csvEncoding:     utils.GetEnv("CSV_ENCODING", sheet.EncodingAuto),
	}

	logger := newLogger()
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	campaign, err := readCampaignConfig(true)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	gcpConfig := readGcpConfig(ctx)
	apiConfig.Profiling.GcpProjectId = gcpConfig.ProjectId

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env, config.Version)
	defer sentry.Flush(3 * time.Second)

	tracingConfig, err := readTelemetryConfig(gcpConfig)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	telemetryRessources, err := infra.InitTelemetry(ctx, tracingConfig, config.Version)
	if err != nil {
		// the service runs without traces rather than not at all
		utils.LogAndReportSentryError(ctx, err)
		telemetryRessources = infra.NoopTelemetry()
	}
	ctx = utils.StoreOpenTelemetryTracerInContext(ctx, telemetryRessources.Tracer)

	repos, closeRepositories, err := initRepositories(ctx, serverConfig.storeBackend, gcpConfig, readPgConfig())
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	defer closeRepositories()

	uc := usecases.NewUsecases(repos,
		usecases.WithCampaign(campaign),
		usecases.WithImportBucketUrl(serverConfig.importBucketUrl),
		usecases.WithDefaultEncoding(serverConfig.csvEncoding),
	)

	router := api.InitRouterMiddlewares(ctx, apiConfig, telemetryRessources)
	server := api.NewServer(router, apiConfig, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	// leaderboard streams never end on their own, they follow the process lifetime
	server.BaseContext = func(net.Listener) context.Context { return notify }

	group, groupCtx := errgroup.WithContext(notify)
	group.Go(func() error {
		logger.InfoContext(ctx, "starting server",
			slog.String("port", apiConfig.Port),
			slog.String("store_backend", serverConfig.storeBackend),
			slog.String("version", config.Version))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "error while serving the app")
		}
		logger.InfoContext(ctx, "server returned")
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "error while shutting down the server")
		}
		if err := telemetryRessources.Shutdown(shutdownCtx); err != nil {
			logger.WarnContext(ctx, fmt.Sprintf("error flushing traces: %v", err))
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	return nil
}
