package models

// RawRow is one decoded line of the export, cells in their original order.
type RawRow []string

// Cell returns the cell at index i, or "" when the row is too short.
func (r RawRow) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

type ImportSchema string

const (
	ImportSchemaUnknown    ImportSchema = ""
	ImportSchemaRevenue    ImportSchema = "revenue"
	ImportSchemaObjectives ImportSchema = "objectives"
	ImportSchemaPoints     ImportSchema = "points"
)

type ScoringMode string

const (
	// ScoringModeRatio scores entities with actual/target pairs. Region scores are ratios of sums.
	ScoringModeRatio ScoringMode = "ratio"
	// ScoringModePoints scores stores with a flat point total. Region scores are the mean of their stores.
	ScoringModePoints ScoringMode = "points"
)

type MetricName string

const (
	MetricRevenue       MetricName = "revenue"
	MetricTrc           MetricName = "trc"
	MetricGoldHousehold MetricName = "gold_household"
	MetricGoldFurniture MetricName = "gold_furniture"
	MetricPoints        MetricName = "points"
)

// MetricNames is the fixed iteration order of metrics, so that aggregates do not depend on map ordering.
var MetricNames = []MetricName{
	MetricRevenue,
	MetricTrc,
	MetricGoldHousehold,
	MetricGoldFurniture,
	MetricPoints,
}

type MetricSide int

const (
	MetricSideActual MetricSide = iota
	MetricSideTarget
	MetricSidePrevious
)

func (s MetricSide) String() string {
	switch s {
	case MetricSideActual:
		return "actual"
	case MetricSideTarget:
		return "target"
	case MetricSidePrevious:
		return "previous"
	}
	return "unknown"
}

// MetricRole is the semantic role of a metric column in the header row.
type MetricRole struct {
	Metric MetricName
	Side   MetricSide
}

func (r MetricRole) String() string {
	return string(r.Metric) + " " + r.Side.String()
}

// UnassignedColumn marks a role that was not found in the header row.
const UnassignedColumn = -1

type MetricColumns struct {
	Actual   int
	Target   int
	Previous int
}

func NewMetricColumns() MetricColumns {
	return MetricColumns{Actual: UnassignedColumn, Target: UnassignedColumn, Previous: UnassignedColumn}
}

func (c MetricColumns) Get(side MetricSide) int {
	switch side {
	case MetricSideActual:
		return c.Actual
	case MetricSideTarget:
		return c.Target
	case MetricSidePrevious:
		return c.Previous
	}
	return UnassignedColumn
}

func (c *MetricColumns) Set(side MetricSide, index int) {
	switch side {
	case MetricSideActual:
		c.Actual = index
	case MetricSideTarget:
		c.Target = index
	case MetricSidePrevious:
		c.Previous = index
	}
}

// ColumnMap is the result of the header lookup for one import.
type ColumnMap struct {
	Schema         ImportSchema
	HeaderRowIndex int
	Region         int
	Store          int
	Metrics        map[MetricName]MetricColumns
}

func (m ColumnMap) ScoringMode() ScoringMode {
	if _, ok := m.Metrics[MetricPoints]; ok {
		return ScoringModePoints
	}
	return ScoringModeRatio
}

// MetricOrder returns the discovered metrics, in the fixed MetricNames order.
func (m ColumnMap) MetricOrder() []MetricName {
	out := make([]MetricName, 0, len(m.Metrics))
	for _, name := range MetricNames {
		if _, ok := m.Metrics[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

type RowKind int

const (
	RowKindIgnore RowKind = iota
	RowKindRegionLabel
	RowKindStore
)

func (k RowKind) String() string {
	switch k {
	case RowKindRegionLabel:
		return "REGION_LABEL"
	case RowKindStore:
		return "STORE"
	}
	return "IGNORE"
}

// UndefinedRegion is the region of store rows that appear before any region label.
const UndefinedRegion = "Undefined region"

type ClassifiedRow struct {
	Kind            RowKind
	Index           int
	StoreName       string
	EffectiveRegion string
	Cells           RawRow
}
