package models

import (
	"time"

	"github.com/guregu/null/v5"
)

const DateFormat = "2006-01-02"

const StoreEntityType = "store"

// MetricSample holds one metric of one store for one import. Values are always finite.
type MetricSample struct {
	Actual   float64
	Target   float64
	Previous float64
}

type StoreScore struct {
	StoreSlug  string
	StoreName  string
	RegionSlug string
	RegionName string
	Date       time.Time
	Mode       ScoringMode

	Metrics      map[MetricName]MetricSample
	Achievements map[MetricName]float64

	GlobalPercent   float64
	ProgressPercent float64
	Points          float64

	LastUpdated time.Time
}

// DocumentId is the key of the daily store snapshot: one document per store and per day.
func (s StoreScore) DocumentId() string {
	return s.Date.Format(DateFormat) + "_" + s.StoreSlug
}

// Score is the value the store is ranked on.
func (s StoreScore) Score() float64 {
	if s.Mode == ScoringModePoints {
		return s.Points
	}
	return s.GlobalPercent
}

// RegionScoreUpdate carries the fields an import is allowed to write on a region.
// The display alias is deliberately absent: it can only be changed through SetRegionAlias.
type RegionScoreUpdate struct {
	RegionSlug      string
	RegionName      string
	Mode            ScoringMode
	CurrentScore    float64
	ProgressPercent float64
	StoreCount      int
	LastUpdate      time.Time
}

type RegionAggregate struct {
	RegionScoreUpdate
	Alias null.String
}

func (r RegionAggregate) DisplayName() string {
	if r.Alias.Valid && r.Alias.String != "" {
		return r.Alias.String
	}
	return r.RegionName
}

// SnapshotBatch is everything one import writes, committed all at once.
type SnapshotBatch struct {
	Date time.Time
	// full replace, keyed by StoreScore.DocumentId()
	StoreReplacements []StoreScore
	// field merge, keyed by RegionSlug
	RegionMerges []RegionScoreUpdate
}

// ScoredImport is the output of the scoring pipeline for one file.
type ScoredImport struct {
	Date            time.Time
	Schema          ImportSchema
	Mode            ScoringMode
	HeaderRowIndex  int
	RowsRead        int
	IgnoredRows     int
	Stores          []StoreScore
	Regions         []RegionScoreUpdate
	DuplicateStores []string
}
