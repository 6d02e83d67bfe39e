package dto

import (
	"time"

	"github.com/checkmarble/challenge-backend/models"
)

type ImportForm struct {
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Encoding string `form:"encoding"`
}

type APIImportReport struct {
	Id              string    `json:"id"`
	FileName        string    `json:"file_name"`
	Date            string    `json:"date"`
	Schema          string    `json:"schema"`
	ScoringMode     string    `json:"scoring_mode"`
	HeaderRowIndex  int       `json:"header_row_index"`
	RowsRead        int       `json:"rows_read"`
	IgnoredRows     int       `json:"ignored_rows"`
	StoresImported  int       `json:"stores_imported"`
	RegionsImported int       `json:"regions_imported"`
	DuplicateStores []string  `json:"duplicate_stores"`
	ImportedAt      time.Time `json:"imported_at"`
}

func AdaptImportReportDto(report models.ImportReport) APIImportReport {
	duplicates := report.DuplicateStores
	if duplicates == nil {
		duplicates = []string{}
	}
	return APIImportReport{
		Id:              report.Id.String(),
		FileName:        report.FileName,
		Date:            report.Date.Format(models.DateFormat),
		Schema:          string(report.Schema),
		ScoringMode:     string(report.Mode),
		HeaderRowIndex:  report.HeaderRowIndex,
		RowsRead:        report.RowsRead,
		IgnoredRows:     report.IgnoredRows,
		StoresImported:  report.StoresImported,
		RegionsImported: report.RegionsImported,
		DuplicateStores: duplicates,
		ImportedAt:      report.ImportedAt,
	}
}
