package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/utils"
)

const TABLE_DAILY_STATS = "daily_stats"

// DBMetricDetail is one metric of a store snapshot, stored in the details json column (or map field).
type DBMetricDetail struct {
	Actual   float64  `json:"actual" firestore:"actual"`
	Target   float64  `json:"target" firestore:"target"`
	Previous float64  `json:"previous" firestore:"previous"`
	Percent  *float64 `json:"percent,omitempty" firestore:"percent,omitempty"`
}

type DBDailyStat struct {
	Id          string    `db:"id"`
	Date        time.Time `db:"date"`
	Slug        string    `db:"slug"`
	Name        string    `db:"name"`
	Region      string    `db:"region"`
	RegionSlug  string    `db:"region_slug"`
	Type        string    `db:"type"`
	ScoringMode string    `db:"scoring_mode"`
	PercentObj  float64   `db:"percent_obj"`
	PercentProg float64   `db:"percent_prog"`
	Points      float64   `db:"points"`
	Details     []byte    `db:"details"`
	LastUpdated time.Time `db:"last_updated"`
}

var SelectDailyStatColumn = utils.ColumnList[DBDailyStat]()

// DocDailyStat is the Firestore shape of daily_stats/{date}_{slug}.
type DocDailyStat struct {
	Date        string                    `firestore:"date"`
	Name        string                    `firestore:"name"`
	Slug        string                    `firestore:"slug"`
	Region      string                    `firestore:"region"`
	RegionSlug  string                    `firestore:"region_slug"`
	Type        string                    `firestore:"type"`
	ScoringMode string                    `firestore:"scoring_mode"`
	PercentObj  float64                   `firestore:"percent_obj"`
	PercentProg float64                   `firestore:"percent_prog"`
	Points      float64                   `firestore:"points"`
	Details     map[string]DBMetricDetail `firestore:"details"`
	LastUpdated time.Time                 `firestore:"last_updated"`
}

func metricDetails(store models.StoreScore) map[string]DBMetricDetail {
	details := make(map[string]DBMetricDetail, len(store.Metrics))
	for metric, sample := range store.Metrics {
		detail := DBMetricDetail{
			Actual:   sample.Actual,
			Target:   sample.Target,
			Previous: sample.Previous,
		}
		if percent, ok := store.Achievements[metric]; ok {
			detail.Percent = &percent
		}
		details[string(metric)] = detail
	}
	return details
}

func adaptMetricDetails(details map[string]DBMetricDetail) (
	map[models.MetricName]models.MetricSample, map[models.MetricName]float64,
) {
	samples := make(map[models.MetricName]models.MetricSample, len(details))
	achievements := make(map[models.MetricName]float64)
	for name, detail := range details {
		metric := models.MetricName(name)
		samples[metric] = models.MetricSample{
			Actual:   detail.Actual,
			Target:   detail.Target,
			Previous: detail.Previous,
		}
		if detail.Percent != nil {
			achievements[metric] = *detail.Percent
		}
	}
	return samples, achievements
}

func NewDBDailyStat(store models.StoreScore) (DBDailyStat, error) {
	details, err := json.Marshal(metricDetails(store))
	if err != nil {
		return DBDailyStat{}, errors.Wrapf(err, "unable to marshal details of store %s", store.StoreSlug)
	}
	return DBDailyStat{
		Id:          store.DocumentId(),
		Date:        store.Date,
		Slug:        store.StoreSlug,
		Name:        store.StoreName,
		Region:      store.RegionName,
		RegionSlug:  store.RegionSlug,
		Type:        models.StoreEntityType,
		ScoringMode: string(store.Mode),
		PercentObj:  store.GlobalPercent,
		PercentProg: store.ProgressPercent,
		Points:      store.Points,
		Details:     details,
		LastUpdated: store.LastUpdated,
	}, nil
}

func AdaptStoreScore(db DBDailyStat) (models.StoreScore, error) {
	var details map[string]DBMetricDetail
	if len(db.Details) > 0 {
		if err := json.Unmarshal(db.Details, &details); err != nil {
			return models.StoreScore{}, errors.Wrapf(err, "unable to unmarshal details of store %s", db.Id)
		}
	}
	samples, achievements := adaptMetricDetails(details)
	return models.StoreScore{
		StoreSlug:       db.Slug,
		StoreName:       db.Name,
		RegionSlug:      db.RegionSlug,
		RegionName:      db.Region,
		Date:            db.Date,
		Mode:            models.ScoringMode(db.ScoringMode),
		Metrics:         samples,
		Achievements:    achievements,
		GlobalPercent:   db.PercentObj,
		ProgressPercent: db.PercentProg,
		Points:          db.Points,
		LastUpdated:     db.LastUpdated,
	}, nil
}

func NewDocDailyStat(store models.StoreScore) DocDailyStat {
	return DocDailyStat{
		Date:        store.Date.Format(models.DateFormat),
		Name:        store.StoreName,
		Slug:        store.StoreSlug,
		Region:      store.RegionName,
		RegionSlug:  store.RegionSlug,
		Type:        models.StoreEntityType,
		ScoringMode: string(store.Mode),
		PercentObj:  store.GlobalPercent,
		PercentProg: store.ProgressPercent,
		Points:      store.Points,
		Details:     metricDetails(store),
		LastUpdated: store.LastUpdated,
	}
}

func AdaptDocStoreScore(doc DocDailyStat) (models.StoreScore, error) {
	date, err := time.Parse(models.DateFormat, doc.Date)
	if err != nil {
		return models.StoreScore{}, errors.Wrapf(err, "invalid date on store document %s", doc.Slug)
	}
	samples, achievements := adaptMetricDetails(doc.Details)
	return models.StoreScore{
		StoreSlug:       doc.Slug,
		StoreName:       doc.Name,
		RegionSlug:      doc.RegionSlug,
		RegionName:      doc.Region,
		Date:            date,
		Mode:            models.ScoringMode(doc.ScoringMode),
		Metrics:         samples,
		Achievements:    achievements,
		GlobalPercent:   doc.PercentObj,
		ProgressPercent: doc.PercentProg,
		Points:          doc.Points,
		LastUpdated:     doc.LastUpdated,
	}, nil
}
