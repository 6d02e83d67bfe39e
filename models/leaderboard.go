package models

import (
	"time"

	"github.com/google/uuid"
)

type RegionStanding struct {
	RegionAggregate
	Rank          int
	TrackPosition float64
}

type Leaderboard struct {
	Goal    GoalProjection
	Regions []RegionStanding
}

type StoreStanding struct {
	StoreScore
	Rank          int
	TrackPosition float64
}

type ImportOptions struct {
	// Date of the snapshot. Zero means today in the campaign timezone.
	Date     time.Time
	Encoding string
	FileName string
}

type ImportReport struct {
	Id              uuid.UUID
	FileName        string
	Date            time.Time
	Schema          ImportSchema
	Mode            ScoringMode
	HeaderRowIndex  int
	RowsRead        int
	IgnoredRows     int
	StoresImported  int
	RegionsImported int
	DuplicateStores []string
	ImportedAt      time.Time
}

func NewImportReport(id uuid.UUID, fileName string, scored ScoredImport, importedAt time.Time) ImportReport {
	return ImportReport{
		Id:              id,
		FileName:        fileName,
		Date:            scored.Date,
		Schema:          scored.Schema,
		Mode:            scored.Mode,
		HeaderRowIndex:  scored.HeaderRowIndex,
		RowsRead:        scored.RowsRead,
		IgnoredRows:     scored.IgnoredRows,
		StoresImported:  len(scored.Stores),
		RegionsImported: len(scored.Regions),
		DuplicateStores: scored.DuplicateStores,
		ImportedAt:      importedAt,
	}
}
