package repositories

import (
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func IsUndefinedTableError(err error) bool {
	var pgxErr *pgconn.PgError
	return errors.As(err, &pgxErr) && pgxErr.Code == pgerrcode.UndefinedTable
}

func IsDeadlockError(err error) bool {
	var pgxErr *pgconn.PgError
	return errors.As(err, &pgxErr) && pgxErr.Code == pgerrcode.DeadlockDetected
}

func wrapQueryError(err error) error {
	switch {
	case err == nil:
		return nil
	case IsUndefinedTableError(err):
		return errors.Wrap(err, "leaderboard tables are missing, run the migrations first")
	case IsDeadlockError(err):
		return errors.Wrap(err, "deadlock with a concurrent import")
	}
	return errors.Wrap(err, "error executing sql query")
}
