package sheet

import (
	"time"

	"github.com/checkmarble/challenge-backend/models"
)

// Score runs the whole scoring pipeline on decoded rows: header lookup, region fill-down and
// aggregation. It does not touch any storage.
func Score(rows []models.RawRow, date time.Time) (models.ScoredImport, error) {
	columns, err := LocateHeader(rows)
	if err != nil {
		return models.ScoredImport{}, err
	}
	return Aggregate(ClassifyRows(rows, columns), columns, date), nil
}
