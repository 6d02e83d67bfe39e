package sheet

import (
	"strings"
	"unicode/utf8"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/pure_utils"
)

const (
	// a region cell needs at least this many characters to start a new region, stray characters are noise
	minRegionLength = 2
	minStoreLength  = 3
)

// ClassifyRows walks the rows below the header in file order, carrying the current region down to the
// rows that leave their region cell blank. A store belongs to the last region label seen above it, so
// reordering the rows changes the result.
func ClassifyRows(rows []models.RawRow, columns models.ColumnMap) []models.ClassifiedRow {
	classified := make([]models.ClassifiedRow, 0, max(len(rows)-columns.HeaderRowIndex-1, 0))
	currentRegion := models.UndefinedRegion
	for index := columns.HeaderRowIndex + 1; index < len(rows); index++ {
		var row models.ClassifiedRow
		row, currentRegion = classifyRow(index, rows[index], columns, currentRegion)
		classified = append(classified, row)
	}
	return classified
}

func classifyRow(
	index int,
	cells models.RawRow,
	columns models.ColumnMap,
	currentRegion string,
) (models.ClassifiedRow, string) {
	regionCell := pure_utils.CleanCell(cells.Cell(columns.Region))
	setsRegion := utf8.RuneCountInString(regionCell) >= minRegionLength && !isTotalLabel(regionCell)
	if setsRegion {
		currentRegion = regionCell
	}

	row := models.ClassifiedRow{
		Kind:            models.RowKindIgnore,
		Index:           index,
		EffectiveRegion: currentRegion,
		Cells:           cells,
	}

	name := pure_utils.CleanCell(cells.Cell(columns.Store))
	if isIgnoredName(name, currentRegion) {
		if setsRegion {
			row.Kind = models.RowKindRegionLabel
		}
		return row, currentRegion
	}

	row.Kind = models.RowKindStore
	row.StoreName = name
	return row, currentRegion
}

func isIgnoredName(name, currentRegion string) bool {
	if utf8.RuneCountInString(name) < minStoreLength {
		return true
	}
	label := pure_utils.NormalizeLabel(name)
	return isTotalLabel(name) ||
		strings.HasPrefix(label, "REGIONS ET MAGASINS") ||
		label == pure_utils.NormalizeLabel(currentRegion)
}

func isTotalLabel(cell string) bool {
	label := pure_utils.NormalizeLabel(cell)
	return label == "TOTAL" || strings.HasPrefix(label, "TOTAL ")
}
