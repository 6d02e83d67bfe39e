package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/repositories/dbmodels"
	"github.com/checkmarble/challenge-backend/utils"
)

const leaderboardNotificationChannel = "leaderboard_updated"

type pgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type PostgresLeaderboardRepository struct {
	pool pgxPool
	// listener connections are acquired from the real pool, nil when only a pgxPool is available
	listenPool *pgxpool.Pool
}

func NewPostgresLeaderboardRepository(pool *pgxpool.Pool) *PostgresLeaderboardRepository {
	return &PostgresLeaderboardRepository{pool: pool, listenPool: pool}
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func execBuilder(ctx context.Context, exec execer, builder squirrel.Sqlizer) (pgconn.CommandTag, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, errors.Wrap(err, "can't build sql query")
	}
	tag, err := exec.Exec(ctx, query, args...)
	return tag, wrapQueryError(err)
}

// sqlToListOfModels runs the query and adapts every row with the given adapter
func sqlToListOfModels[DBModel, Model any](
	ctx context.Context,
	exec queryer,
	builder squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) ([]Model, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Model, error) {
		dbModel, err := pgx.RowToStructByName[DBModel](row)
		if err != nil {
			var zero Model
			return zero, errors.Wrapf(err, "error scanning row to struct %T", dbModel)
		}
		return adapter(dbModel)
	})
}

func (repo *PostgresLeaderboardRepository) Liveness(ctx context.Context) error {
	return errors.Wrap(repo.pool.Ping(ctx), "database unreachable")
}

func (repo *PostgresLeaderboardRepository) CommitSnapshot(ctx context.Context, batch models.SnapshotBatch) error {
	ctx, span := utils.OpenTelemetryTracerFromContext(ctx).Start(ctx,
		"repositories.PostgresLeaderboardRepository.CommitSnapshot",
		trace.WithAttributes(
			attribute.String("date", batch.Date.Format(models.DateFormat)),
			attribute.Int("stores", len(batch.StoreReplacements)),
			attribute.Int("regions", len(batch.RegionMerges)),
		))
	defer span.End()

	tx, err := repo.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "error starting transaction")
	}

	if err := writeSnapshot(ctx, tx, batch); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "error committing snapshot")
	}
	return nil
}

func writeSnapshot(ctx context.Context, tx pgx.Tx, batch models.SnapshotBatch) error {
	if len(batch.StoreReplacements) > 0 {
		query := NewQueryBuilder().
			Insert(dbmodels.TABLE_DAILY_STATS).
			Columns(dbmodels.SelectDailyStatColumn...)
		for _, store := range batch.StoreReplacements {
			db, err := dbmodels.NewDBDailyStat(store)
			if err != nil {
				return err
			}
			query = query.Values(db.Id, db.Date, db.Slug, db.Name, db.Region, db.RegionSlug, db.Type,
				db.ScoringMode, db.PercentObj, db.PercentProg, db.Points, db.Details, db.LastUpdated)
		}
		query = query.Suffix("ON CONFLICT (id) DO UPDATE SET " + excludedAssignments(dbmodels.SelectDailyStatColumn[1:]))
		if _, err := execBuilder(ctx, tx, query); err != nil {
			return errors.Wrap(err, "error writing store snapshots")
		}
	}

	if len(batch.RegionMerges) > 0 {
		// every column but pseudo: an import never touches the alias
		columns := []string{
			dbmodels.RegionFieldSlug,
			dbmodels.RegionFieldName,
			dbmodels.RegionFieldScoringMode,
			dbmodels.RegionFieldCurrentScoreObj,
			dbmodels.RegionFieldCurrentScoreProg,
			dbmodels.RegionFieldNbStores,
			dbmodels.RegionFieldLastUpdate,
		}
		query := NewQueryBuilder().Insert(dbmodels.TABLE_REGIONS).Columns(columns...)
		for _, region := range batch.RegionMerges {
			query = query.Values(region.RegionSlug, region.RegionName, string(region.Mode), region.CurrentScore,
				region.ProgressPercent, region.StoreCount, region.LastUpdate)
		}
		query = query.Suffix("ON CONFLICT (slug) DO UPDATE SET " + excludedAssignments(columns[1:]))
		if _, err := execBuilder(ctx, tx, query); err != nil {
			return errors.Wrap(err, "error writing region aggregates")
		}
	}

	_, err := tx.Exec(ctx, "SELECT pg_notify($1, $2)", leaderboardNotificationChannel,
		batch.Date.Format(models.DateFormat))
	return errors.Wrap(err, "error notifying leaderboard listeners")
}

func excludedAssignments(columns []string) string {
	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = EXCLUDED.%s", column, column)
	}
	return strings.Join(assignments, ", ")
}

func (repo *PostgresLeaderboardRepository) ListRegions(ctx context.Context) ([]models.RegionAggregate, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectRegionColumn...).
		From(dbmodels.TABLE_REGIONS).
		OrderBy("slug")
	return sqlToListOfModels(ctx, repo.pool, query, dbmodels.AdaptRegion)
}

func (repo *PostgresLeaderboardRepository) GetRegion(ctx context.Context, regionSlug string) (models.RegionAggregate, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectRegionColumn...).
		From(dbmodels.TABLE_REGIONS).
		Where(squirrel.Eq{"slug": regionSlug})
	regions, err := sqlToListOfModels(ctx, repo.pool, query, dbmodels.AdaptRegion)
	if err != nil {
		return models.RegionAggregate{}, err
	}
	if len(regions) == 0 {
		return models.RegionAggregate{}, errors.Wrapf(models.NotFoundError, "region %s", regionSlug)
	}
	return regions[0], nil
}

func (repo *PostgresLeaderboardRepository) ListLatestStoresOfRegion(ctx context.Context, regionSlug string) ([]models.StoreScore, error) {
	// question placeholders, the outer query renumbers them
	latestDate := squirrel.
		Select("MAX(date)").
		From(dbmodels.TABLE_DAILY_STATS).
		Where(squirrel.Eq{"region_slug": regionSlug})
	latestDateSql, latestDateArgs, err := latestDate.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	query := NewQueryBuilder().
		Select(dbmodels.SelectDailyStatColumn...).
		From(dbmodels.TABLE_DAILY_STATS).
		Where(squirrel.Eq{"region_slug": regionSlug}).
		Where(squirrel.Expr("date = ("+latestDateSql+")", latestDateArgs...)).
		OrderBy("slug")
	return sqlToListOfModels(ctx, repo.pool, query, dbmodels.AdaptStoreScore)
}

func (repo *PostgresLeaderboardRepository) SetRegionAlias(ctx context.Context, regionSlug string, alias null.String) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_REGIONS).
		Set(dbmodels.RegionFieldPseudo, alias.Ptr()).
		Where(squirrel.Eq{"slug": regionSlug})
	tag, err := execBuilder(ctx, repo.pool, query)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(models.NotFoundError, "region %s", regionSlug)
	}

	_, err = repo.pool.Exec(ctx, "SELECT pg_notify($1, $2)", leaderboardNotificationChannel, regionSlug)
	return errors.Wrap(err, "error notifying leaderboard listeners")
}

// WatchRegions listens to the notifications sent by every commit, on a dedicated connection.
func (repo *PostgresLeaderboardRepository) WatchRegions(ctx context.Context) (<-chan struct{}, error) {
	if repo.listenPool == nil {
		return nil, errors.New("no connection pool to listen on")
	}
	conn, err := repo.listenPool.Acquire(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error acquiring a listener connection")
	}
	if _, err := conn.Exec(ctx, "LISTEN "+leaderboardNotificationChannel); err != nil {
		conn.Release()
		return nil, errors.Wrap(err, "error listening to leaderboard notifications")
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer func() {
			// the connection goes back to the pool, it must stop listening first
			unlistenCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, _ = conn.Exec(unlistenCtx, "UNLISTEN "+leaderboardNotificationChannel)
			conn.Release()
		}()
		for {
			if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
				if ctx.Err() == nil {
					utils.LoggerFromContext(ctx).WarnContext(ctx,
						fmt.Sprintf("leaderboard listener stopped: %v", err))
				}
				return
			}
			notify(out)
		}
	}()
	return out, nil
}
