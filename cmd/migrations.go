package cmd

import (
	"context"
	"fmt"

	"github.com/checkmarble/challenge-backend/repositories"
	"github.com/checkmarble/challenge-backend/utils"
)

// RunMigrations creates or upgrades the Postgres leaderboard tables. Firestore needs no migration.
func RunMigrations() error {
	logger := newLogger()
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	migrater := repositories.NewMigrater(readPgConfig())
	if err := migrater.Run(ctx); err != nil {
		logger.ErrorContext(ctx, fmt.Sprintf("error running migrations: %v", err))
		return err
	}
	logger.InfoContext(ctx, "migrations applied")
	return nil
}
