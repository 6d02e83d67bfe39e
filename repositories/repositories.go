package repositories

import (
	"cloud.google.com/go/firestore"
	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkmarble/challenge-backend/repositories/clock"
)

const (
	StoreBackendFirestore = "firestore"
	StoreBackendPostgres  = "postgres"
	StoreBackendMemory    = "memory"
)

type Repositories struct {
	LeaderboardRepository LeaderboardRepository
	BlobRepository        BlobRepository
	Clock                 clock.Clock
}

type options struct {
	backend         string
	firestoreClient *firestore.Client
	pgPool          *pgxpool.Pool
	clock           clock.Clock
}

type Option func(*options)

func WithFirestore(client *firestore.Client) Option {
	return func(o *options) {
		o.backend = StoreBackendFirestore
		o.firestoreClient = client
	}
}

func WithPostgres(pool *pgxpool.Pool) Option {
	return func(o *options) {
		o.backend = StoreBackendPostgres
		o.pgPool = pool
	}
}

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// NewRepositories wires the leaderboard storage backend. Without a Firestore client or a Postgres pool,
// the leaderboard lives in memory.
func NewRepositories(opts ...Option) (Repositories, error) {
	o := options{backend: StoreBackendMemory, clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}

	repositories := Repositories{
		BlobRepository: NewBlobRepository(),
		Clock:          o.clock,
	}
	switch o.backend {
	case StoreBackendFirestore:
		if o.firestoreClient == nil {
			return Repositories{}, errors.New("firestore backend selected without a firestore client")
		}
		repositories.LeaderboardRepository = NewFirestoreLeaderboardRepository(o.firestoreClient)
	case StoreBackendPostgres:
		if o.pgPool == nil {
			return Repositories{}, errors.New("postgres backend selected without a connection pool")
		}
		repositories.LeaderboardRepository = NewPostgresLeaderboardRepository(o.pgPool)
	default:
		repositories.LeaderboardRepository = NewMemoryLeaderboardRepository()
	}
	return repositories, nil
}

func NewQueryBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
