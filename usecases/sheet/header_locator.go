package sheet

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/pure_utils"
)

// Only the top of the export is searched for the header row.
const headerScanDepth = 30

var (
	regionLabels    = []string{"REGION", "REGIONS", "DR", "DIRECTION REGIONALE"}
	storeLabels     = []string{"MAGASIN", "MAGASINS", "STORE", "NOM", "POINT DE VENTE"}
	objectiveTokens = []string{"OBJ", "BUDGET", "CIBLE"}
	goldTokens      = []string{"GLD", "GOLD"}
	// metric family tokens of the objectives export
	familyTokens = append([]string{"TRC"}, goldTokens...)
)

type schemaDefinition struct {
	schema models.ImportSchema
	// matches is tested against the normalized labels of a candidate row
	matches func(labels []string) bool
	// fixed region and store columns; UnassignedColumn when they are looked up by label
	regionColumn int
	storeColumn  int
	metricRole   func(label string) (models.MetricRole, bool)
	validate     func(columns models.ColumnMap) error
}

// schemas are tested in this order on every row, the first one that matches wins
var schemas = []schemaDefinition{
	{
		schema: models.ImportSchemaRevenue,
		matches: func(labels []string) bool {
			rowText := strings.Join(labels, " | ")
			return strings.Contains(rowText, "CA N") && strings.Contains(rowText, "BUDGET")
		},
		regionColumn: 0,
		storeColumn:  1,
		metricRole:   revenueMetricRole,
		validate:     validateRevenueColumns,
	},
	{
		schema: models.ImportSchemaObjectives,
		matches: func(labels []string) bool {
			return hasRegionCell(labels) && slices.ContainsFunc(labels, func(label string) bool {
				return containsAny(label, familyTokens) && containsAny(label, objectiveTokens)
			})
		},
		regionColumn: models.UnassignedColumn,
		storeColumn:  models.UnassignedColumn,
		metricRole:   objectivesMetricRole,
		validate:     validateObjectivesColumns,
	},
	{
		schema: models.ImportSchemaPoints,
		matches: func(labels []string) bool {
			return hasRegionCell(labels) && slices.ContainsFunc(labels, func(label string) bool {
				return strings.Contains(label, "POINTS")
			})
		},
		regionColumn: models.UnassignedColumn,
		storeColumn:  models.UnassignedColumn,
		metricRole:   pointsMetricRole,
		validate:     validatePointsColumns,
	},
}

// LocateHeader finds the header row among the first rows of the export and maps every known role to
// its column index.
func LocateHeader(rows []models.RawRow) (models.ColumnMap, error) {
	depth := min(len(rows), headerScanDepth)
	for i := 0; i < depth; i++ {
		labels := pure_utils.Map([]string(rows[i]), pure_utils.NormalizeLabel)
		for _, definition := range schemas {
			if definition.matches(labels) {
				return mapColumns(definition, i, rows[i])
			}
		}
	}
	return models.ColumnMap{}, errors.Wrapf(models.ErrHeaderNotFound,
		"no row among the first %d contains the expected column titles (for instance 'CA N' and 'Budget')",
		depth)
}

// hasRegionCell keeps title lines such as "Objectifs région Nord" from qualifying as a header.
func hasRegionCell(labels []string) bool {
	return slices.ContainsFunc(labels, func(label string) bool {
		return slices.Contains(regionLabels, label)
	})
}

func mapColumns(definition schemaDefinition, headerIndex int, header models.RawRow) (models.ColumnMap, error) {
	columns := models.ColumnMap{
		Schema:         definition.schema,
		HeaderRowIndex: headerIndex,
		Region:         definition.regionColumn,
		Store:          definition.storeColumn,
		Metrics:        make(map[models.MetricName]models.MetricColumns),
	}
	lookupRegionAndStore := definition.regionColumn == models.UnassignedColumn

	for index, cell := range header {
		label := pure_utils.NormalizeLabel(cell)
		if label == "" {
			continue
		}

		if lookupRegionAndStore {
			if slices.Contains(regionLabels, label) {
				if columns.Region == models.UnassignedColumn {
					columns.Region = index
				}
				continue
			}
			if slices.Contains(storeLabels, label) {
				if columns.Store == models.UnassignedColumn {
					columns.Store = index
				}
				continue
			}
		}

		role, ok := definition.metricRole(label)
		if !ok {
			continue
		}
		metricColumns, found := columns.Metrics[role.Metric]
		if !found {
			metricColumns = models.NewMetricColumns()
		}
		if metricColumns.Get(role.Side) == models.UnassignedColumn {
			metricColumns.Set(role.Side, index)
		}
		columns.Metrics[role.Metric] = metricColumns
	}

	if err := definition.validate(columns); err != nil {
		return models.ColumnMap{}, err
	}
	return columns, nil
}

func revenueMetricRole(label string) (models.MetricRole, bool) {
	switch label {
	case "CA N":
		return models.MetricRole{Metric: models.MetricRevenue, Side: models.MetricSideActual}, true
	case "BUDGET":
		return models.MetricRole{Metric: models.MetricRevenue, Side: models.MetricSideTarget}, true
	case "CA N-1":
		return models.MetricRole{Metric: models.MetricRevenue, Side: models.MetricSidePrevious}, true
	}
	return models.MetricRole{}, false
}

func objectivesMetricRole(label string) (models.MetricRole, bool) {
	var metric models.MetricName
	gold := containsAny(label, goldTokens)
	switch {
	case strings.Contains(label, "TRC"):
		metric = models.MetricTrc
	case gold && strings.Contains(label, "MEN"):
		metric = models.MetricGoldHousehold
	case gold && strings.Contains(label, "MEU"):
		metric = models.MetricGoldFurniture
	default:
		return models.MetricRole{}, false
	}

	side := models.MetricSideActual
	switch {
	case containsAny(label, objectiveTokens):
		side = models.MetricSideTarget
	case strings.Contains(label, "N-1"):
		side = models.MetricSidePrevious
	}
	return models.MetricRole{Metric: metric, Side: side}, true
}

func pointsMetricRole(label string) (models.MetricRole, bool) {
	if strings.Contains(label, "POINT") {
		return models.MetricRole{Metric: models.MetricPoints, Side: models.MetricSideActual}, true
	}
	return models.MetricRole{}, false
}

func validateRevenueColumns(columns models.ColumnMap) error {
	revenue, ok := columns.Metrics[models.MetricRevenue]
	if !ok || revenue.Actual == models.UnassignedColumn {
		return models.NewRequiredColumnMissingError("CA N")
	}
	if revenue.Target == models.UnassignedColumn {
		return models.NewRequiredColumnMissingError("BUDGET")
	}
	return nil
}

func validateRegionAndStore(columns models.ColumnMap) error {
	if columns.Region == models.UnassignedColumn {
		return models.NewRequiredColumnMissingError("region")
	}
	if columns.Store == models.UnassignedColumn {
		return models.NewRequiredColumnMissingError("store")
	}
	return nil
}

func validateObjectivesColumns(columns models.ColumnMap) error {
	if err := validateRegionAndStore(columns); err != nil {
		return err
	}
	if len(columns.Metrics) == 0 {
		return models.NewRequiredColumnMissingError(
			models.MetricRole{Metric: models.MetricTrc, Side: models.MetricSideActual}.String())
	}
	for _, metric := range columns.MetricOrder() {
		metricColumns := columns.Metrics[metric]
		for _, side := range []models.MetricSide{models.MetricSideActual, models.MetricSideTarget} {
			if metricColumns.Get(side) == models.UnassignedColumn {
				return models.NewRequiredColumnMissingError(models.MetricRole{Metric: metric, Side: side}.String())
			}
		}
	}
	return nil
}

func validatePointsColumns(columns models.ColumnMap) error {
	if err := validateRegionAndStore(columns); err != nil {
		return err
	}
	if _, ok := columns.Metrics[models.MetricPoints]; !ok {
		return models.NewRequiredColumnMissingError("points")
	}
	return nil
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
