package repositories

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/repositories/dbmodels"
	"github.com/checkmarble/challenge-backend/utils"
)

const (
	collectionDailyStats = "daily_stats"
	collectionRegions    = "regions"
)

type FirestoreLeaderboardRepository struct {
	client *firestore.Client
}

func NewFirestoreLeaderboardRepository(client *firestore.Client) *FirestoreLeaderboardRepository {
	return &FirestoreLeaderboardRepository{client: client}
}

func (repo *FirestoreLeaderboardRepository) CommitSnapshot(ctx context.Context, batch models.SnapshotBatch) error {
	ctx, span := utils.OpenTelemetryTracerFromContext(ctx).Start(ctx,
		"repositories.FirestoreLeaderboardRepository.CommitSnapshot",
		trace.WithAttributes(
			attribute.String("date", batch.Date.Format(models.DateFormat)),
			attribute.Int("stores", len(batch.StoreReplacements)),
			attribute.Int("regions", len(batch.RegionMerges)),
		))
	defer span.End()

	stores := repo.client.Collection(collectionDailyStats)
	regions := repo.client.Collection(collectionRegions)
	err := repo.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, store := range batch.StoreReplacements {
			if err := tx.Set(stores.Doc(store.DocumentId()), dbmodels.NewDocDailyStat(store)); err != nil {
				return err
			}
		}
		for _, region := range batch.RegionMerges {
			if err := tx.Set(regions.Doc(region.RegionSlug), dbmodels.RegionScoreFields(region),
				firestore.MergeAll); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrap(err, "error committing snapshot to firestore")
}

func (repo *FirestoreLeaderboardRepository) ListRegions(ctx context.Context) ([]models.RegionAggregate, error) {
	docs, err := repo.client.Collection(collectionRegions).OrderBy(dbmodels.RegionFieldSlug, firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "error listing regions")
	}
	regions := make([]models.RegionAggregate, 0, len(docs))
	for _, doc := range docs {
		region, err := adaptRegionDocument(doc)
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	return regions, nil
}

func (repo *FirestoreLeaderboardRepository) GetRegion(ctx context.Context, regionSlug string) (models.RegionAggregate, error) {
	doc, err := repo.client.Collection(collectionRegions).Doc(regionSlug).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.RegionAggregate{}, errors.Wrapf(models.NotFoundError, "region %s", regionSlug)
	}
	if err != nil {
		return models.RegionAggregate{}, errors.Wrapf(err, "error reading region %s", regionSlug)
	}
	return adaptRegionDocument(doc)
}

func adaptRegionDocument(doc *firestore.DocumentSnapshot) (models.RegionAggregate, error) {
	var region dbmodels.DocRegion
	if err := doc.DataTo(&region); err != nil {
		return models.RegionAggregate{}, errors.Wrapf(err, "error reading region document %s", doc.Ref.ID)
	}
	if region.Slug == "" {
		region.Slug = doc.Ref.ID
	}
	return dbmodels.AdaptDocRegion(region), nil
}

func (repo *FirestoreLeaderboardRepository) ListLatestStoresOfRegion(ctx context.Context, regionSlug string) ([]models.StoreScore, error) {
	stores := repo.client.Collection(collectionDailyStats).Where("region_slug", "==", regionSlug)

	latest, err := stores.OrderBy("date", firestore.Desc).Limit(1).Documents(ctx).Next()
	if errors.Is(err, iterator.Done) {
		return []models.StoreScore{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error finding the latest snapshot of region %s", regionSlug)
	}
	latestDate, err := latest.DataAt("date")
	if err != nil {
		return nil, errors.Wrap(err, "store document without date")
	}

	docs, err := stores.Where("date", "==", latestDate).OrderBy("slug", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "error listing stores of region %s", regionSlug)
	}
	out := make([]models.StoreScore, 0, len(docs))
	for _, doc := range docs {
		var stat dbmodels.DocDailyStat
		if err := doc.DataTo(&stat); err != nil {
			return nil, errors.Wrapf(err, "error reading store document %s", doc.Ref.ID)
		}
		store, err := dbmodels.AdaptDocStoreScore(stat)
		if err != nil {
			return nil, err
		}
		out = append(out, store)
	}
	return out, nil
}

func (repo *FirestoreLeaderboardRepository) SetRegionAlias(ctx context.Context, regionSlug string, alias null.String) error {
	var value any = firestore.Delete
	if alias.Valid {
		value = alias.String
	}
	_, err := repo.client.Collection(collectionRegions).Doc(regionSlug).Update(ctx, []firestore.Update{
		{Path: dbmodels.RegionFieldPseudo, Value: value},
	})
	if status.Code(err) == codes.NotFound {
		return errors.Wrapf(models.NotFoundError, "region %s", regionSlug)
	}
	return errors.Wrapf(err, "error updating alias of region %s", regionSlug)
}

func (repo *FirestoreLeaderboardRepository) Liveness(ctx context.Context) error {
	_, err := repo.client.Collection(collectionRegions).Limit(1).Documents(ctx).GetAll()
	return errors.Wrap(err, "firestore unreachable")
}

// WatchRegions follows the realtime snapshots of the regions collection. The first snapshot is the
// current state and is not signaled.
func (repo *FirestoreLeaderboardRepository) WatchRegions(ctx context.Context) (<-chan struct{}, error) {
	snapshots := repo.client.Collection(collectionRegions).Snapshots(ctx)

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer snapshots.Stop()
		first := true
		for {
			_, err := snapshots.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					utils.LoggerFromContext(ctx).WarnContext(ctx,
						fmt.Sprintf("firestore region watch stopped: %v", err))
				}
				return
			}
			if first {
				first = false
				continue
			}
			notify(out)
		}
	}()
	return out, nil
}
