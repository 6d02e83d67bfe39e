package dbmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/challenge-backend/models"
)

var store = models.StoreScore{
	StoreSlug:  "butlille",
	StoreName:  "BUT Lille",
	RegionSlug: "nord",
	RegionName: "Nord",
	Date:       time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	Mode:       models.ScoringModeRatio,
	Metrics: map[models.MetricName]models.MetricSample{
		models.MetricRevenue: {Actual: 125, Target: 100, Previous: 110},
	},
	Achievements:    map[models.MetricName]float64{models.MetricRevenue: 125},
	GlobalPercent:   125,
	ProgressPercent: 13.64,
	LastUpdated:     time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC),
}

func TestDBDailyStat_RoundTrip(t *testing.T) {
	db, err := NewDBDailyStat(store)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14_butlille", db.Id)
	assert.Equal(t, "store", db.Type)
	assert.JSONEq(t, `{"revenue":{"actual":125,"target":100,"previous":110,"percent":125}}`, string(db.Details))

	adapted, err := AdaptStoreScore(db)
	require.NoError(t, err)
	assert.Equal(t, store, adapted)
}

func TestDocDailyStat_RoundTrip(t *testing.T) {
	doc := NewDocDailyStat(store)
	assert.Equal(t, "2025-03-14", doc.Date)

	adapted, err := AdaptDocStoreScore(doc)
	require.NoError(t, err)
	assert.Equal(t, store, adapted)
}

func TestRegionScoreFields_NeverCarryPseudo(t *testing.T) {
	fields := RegionScoreFields(models.RegionScoreUpdate{RegionSlug: "nord", RegionName: "Nord"})
	assert.NotContains(t, fields, RegionFieldPseudo)
	assert.Equal(t, "nord", fields[RegionFieldSlug])
}
