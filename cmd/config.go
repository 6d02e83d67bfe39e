package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/checkmarble/challenge-backend/infra"
	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/repositories"
	"github.com/checkmarble/challenge-backend/utils"
)

const appName = "challenge-backend"

type CompiledConfig struct {
	Version string
}

func readPgConfig() infra.PgConfig {
	return infra.PgConfig{
		ConnectionString:    utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:            utils.GetEnv("PG_DATABASE", "challenge"),
		DbConnectWithSocket: utils.GetEnv("PG_CONNECT_WITH_SOCKET", false),
		Hostname:            utils.GetEnv("PG_HOSTNAME", ""),
		Password:            utils.GetEnv("PG_PASSWORD", ""),
		Port:                utils.GetEnv("PG_PORT", "5432"),
		User:                utils.GetEnv("PG_USER", ""),
		MaxPoolConnections:  utils.GetEnv("PG_MAX_POOL_SIZE", 0),
		SslMode:             utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
}

func readGcpConfig(ctx context.Context) infra.GcpConfig {
	projectId := utils.GetEnv("GOOGLE_CLOUD_PROJECT", "")
	if projectId == "" {
		var err error
		projectId, err = infra.ProjectIdFromMetadata(ctx)
		if err != nil {
			utils.LoggerFromContext(ctx).WarnContext(ctx, fmt.Sprintf("could not read the GCP project id: %v", err))
		}
	}
	return infra.GcpConfig{ProjectId: projectId}
}

func readTelemetryConfig(gcpConfig infra.GcpConfig) (infra.TelemetryConfiguration, error) {
	samplingMap, err := parseSamplingRates(utils.GetEnv("TRACING_SAMPLING_RATES", ""))
	if err != nil {
		return infra.TelemetryConfiguration{}, err
	}
	return infra.TelemetryConfiguration{
		Enabled:         utils.GetEnv("ENABLE_TRACING", false),
		ApplicationName: appName,
		Exporter:        utils.GetEnv("TRACING_EXPORTER", infra.TracingExporterOtlp),
		ProjectId:       gcpConfig.ProjectId,
		SamplingMap:     samplingMap,
	}, nil
}

// readCampaignConfig reads the campaign window. Only the timezone is needed when the window is not
// required, to date the imports.
func readCampaignConfig(required bool) (models.CampaignConfig, error) {
	start := utils.GetEnv("CAMPAIGN_START", "")
	end := utils.GetEnv("CAMPAIGN_END", "")
	timezone := utils.GetEnv("CAMPAIGN_TIMEZONE", "Europe/Paris")
	if !required && start == "" && end == "" {
		return models.ParseCampaignTimezone(timezone)
	}
	return models.ParseCampaignConfig(start, end, timezone)
}

func newLogger() *slog.Logger {
	format := utils.GetEnv("LOGGING_FORMAT", utils.LoggingFormatText)
	var level slog.Level
	if err := level.UnmarshalText([]byte(utils.GetEnv("LOGGING_LEVEL", "info"))); err != nil {
		level = slog.LevelInfo
	}
	return utils.NewLogger(format, level)
}

// parseSamplingRates reads "span name=ratio" pairs separated by commas, for instance
// "GET /leaderboard=0.1,POST /imports=1".
func parseSamplingRates(value string) (map[string]float64, error) {
	rates := make(map[string]float64)
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, rawRate, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errors.Newf("invalid sampling rate '%s', expected name=ratio", pair)
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(rawRate), 64)
		if err != nil || rate < 0 || rate > 1 {
			return nil, errors.Newf("invalid sampling ratio '%s' for %s, expected a number between 0 and 1", rawRate, name)
		}
		rates[strings.TrimSpace(name)] = rate
	}
	return rates, nil
}

// initRepositories connects the leaderboard storage backend chosen with STORE_BACKEND. The returned
// function releases the connections.
func initRepositories(ctx context.Context, backend string, gcpConfig infra.GcpConfig, pgConfig infra.PgConfig) (repositories.Repositories, func(), error) {
	switch backend {
	case repositories.StoreBackendFirestore:
		client, err := infra.NewFirestoreClient(ctx, gcpConfig)
		if err != nil {
			return repositories.Repositories{}, nil, err
		}
		repos, err := repositories.NewRepositories(repositories.WithFirestore(client))
		return repos, func() { _ = client.Close() }, err
	case repositories.StoreBackendPostgres:
		pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig)
		if err != nil {
			return repositories.Repositories{}, nil, err
		}
		repos, err := repositories.NewRepositories(repositories.WithPostgres(pool))
		return repos, pool.Close, err
	case repositories.StoreBackendMemory:
		utils.LoggerFromContext(ctx).WarnContext(ctx, "the leaderboard is kept in memory and lost on restart")
		repos, err := repositories.NewRepositories()
		return repos, func() {}, err
	}
	return repositories.Repositories{}, nil, errors.Newf("unknown store backend '%s'", backend)
}
