package sheet

import (
	"math"
	"slices"
	"time"

	"github.com/hashicorp/go-set/v2"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/pure_utils"
)

// Aggregate scores every store row and folds the stores into region totals.
//
// A store listed twice in the same file keeps its last row only, so re-listing a store never counts
// its volume twice in its region. Region scores in ratio mode are computed on the summed actuals and
// targets of their stores, which weights stores by volume rather than by headcount.
func Aggregate(rows []models.ClassifiedRow, columns models.ColumnMap, date time.Time) models.ScoredImport {
	mode := columns.ScoringMode()
	metrics := columns.MetricOrder()

	scored := models.ScoredImport{
		Date:           date,
		Schema:         columns.Schema,
		Mode:           mode,
		HeaderRowIndex: columns.HeaderRowIndex,
		RowsRead:       len(rows),
	}

	storePositions := make(map[string]int)
	duplicates := set.New[string](0)
	for _, row := range rows {
		if row.Kind != models.RowKindStore {
			scored.IgnoredRows++
			continue
		}
		store := scoreStore(row, columns, metrics, mode, date)
		if store.StoreSlug == "" {
			scored.IgnoredRows++
			continue
		}
		if position, ok := storePositions[store.StoreSlug]; ok {
			duplicates.Insert(store.StoreSlug)
			scored.Stores[position] = store
			continue
		}
		storePositions[store.StoreSlug] = len(scored.Stores)
		scored.Stores = append(scored.Stores, store)
	}

	scored.Regions = aggregateRegions(scored.Stores, metrics, mode, date)
	scored.DuplicateStores = duplicates.Slice()
	slices.Sort(scored.DuplicateStores)
	return scored
}

func scoreStore(
	row models.ClassifiedRow,
	columns models.ColumnMap,
	metrics []models.MetricName,
	mode models.ScoringMode,
	date time.Time,
) models.StoreScore {
	samples := make(map[models.MetricName]models.MetricSample, len(metrics))
	for _, metric := range metrics {
		metricColumns := columns.Metrics[metric]
		samples[metric] = models.MetricSample{
			Actual:   readAmount(row.Cells, metricColumns.Actual),
			Target:   readAmount(row.Cells, metricColumns.Target),
			Previous: readAmount(row.Cells, metricColumns.Previous),
		}
	}

	store := models.StoreScore{
		StoreSlug:  pure_utils.Slugify(row.StoreName),
		StoreName:  row.StoreName,
		RegionSlug: pure_utils.Slugify(row.EffectiveRegion),
		RegionName: row.EffectiveRegion,
		Date:       date,
		Mode:       mode,
		Metrics:    samples,
	}

	if mode == models.ScoringModePoints {
		store.Points = pure_utils.Round2(samples[models.MetricPoints].Actual)
		return store
	}
	store.Achievements, store.GlobalPercent = achievements(samples, metrics)
	store.ProgressPercent = progress(samples, metrics)
	return store
}

// readAmount never fails: a blank or malformed cell is an amount of 0.
func readAmount(cells models.RawRow, index int) float64 {
	if index == models.UnassignedColumn {
		return 0
	}
	return math.Max(0, pure_utils.ParseLocaleNumber(cells.Cell(index)))
}

// achievements returns the achievement percentage of every metric with a positive target, and their
// mean. Metrics without a target are left out of the mean instead of counting as 0%.
func achievements(
	samples map[models.MetricName]models.MetricSample,
	metrics []models.MetricName,
) (map[models.MetricName]float64, float64) {
	perMetric := make(map[models.MetricName]float64, len(metrics))
	sum := 0.0
	count := 0
	for _, metric := range metrics {
		sample := samples[metric]
		if sample.Target <= 0 {
			continue
		}
		achievement := sample.Actual / sample.Target * 100
		perMetric[metric] = pure_utils.Round2(achievement)
		sum += achievement
		count++
	}
	if count == 0 {
		return perMetric, 0
	}
	return perMetric, pure_utils.Round2(sum / float64(count))
}

// progress compares actuals with the previous year, on the metrics that have a previous year value.
func progress(samples map[models.MetricName]models.MetricSample, metrics []models.MetricName) float64 {
	actual, previous := 0.0, 0.0
	for _, metric := range metrics {
		sample := samples[metric]
		if sample.Previous <= 0 {
			continue
		}
		actual += sample.Actual
		previous += sample.Previous
	}
	if previous <= 0 {
		return 0
	}
	return pure_utils.Round2((actual - previous) / previous * 100)
}

type regionTotals struct {
	name    string
	stores  int
	points  float64
	samples map[models.MetricName]models.MetricSample
}

func aggregateRegions(
	stores []models.StoreScore,
	metrics []models.MetricName,
	mode models.ScoringMode,
	date time.Time,
) []models.RegionScoreUpdate {
	totals := make(map[string]*regionTotals)
	for _, store := range stores {
		region, ok := totals[store.RegionSlug]
		if !ok {
			region = &regionTotals{
				name:    store.RegionName,
				samples: make(map[models.MetricName]models.MetricSample, len(metrics)),
			}
			totals[store.RegionSlug] = region
		}
		region.stores++
		region.points += store.Points
		for metric, sample := range store.Metrics {
			sum := region.samples[metric]
			sum.Actual += sample.Actual
			sum.Target += sample.Target
			sum.Previous += sample.Previous
			region.samples[metric] = sum
		}
	}

	regions := make([]models.RegionScoreUpdate, 0, len(totals))
	for slug, region := range totals {
		update := models.RegionScoreUpdate{
			RegionSlug: slug,
			RegionName: region.name,
			Mode:       mode,
			StoreCount: region.stores,
			LastUpdate: date,
		}
		if mode == models.ScoringModePoints {
			update.CurrentScore = pure_utils.Round2(region.points / float64(region.stores))
		} else {
			_, update.CurrentScore = achievements(region.samples, metrics)
			update.ProgressPercent = progress(region.samples, metrics)
		}
		regions = append(regions, update)
	}
	slices.SortFunc(regions, func(a, b models.RegionScoreUpdate) int {
		if a.RegionSlug < b.RegionSlug {
			return -1
		}
		if a.RegionSlug > b.RegionSlug {
			return 1
		}
		return 0
	})
	return regions
}
