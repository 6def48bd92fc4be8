package schema

// Custom string types for type safety.
type (
	// PriorityLevel represents an urgency tier for villages and recommendation rows.
	PriorityLevel string

	// WaterLevel represents a water-availability filter bucket.
	WaterLevel string

	// IncomeLevel represents an income filter bucket derived from landholding size.
	IncomeLevel string

	// SortKey represents the column recommendations are sorted by.
	SortKey string

	// SortDir represents a sort direction.
	SortDir string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// Claim type identifiers and their display labels.
const (
	IndividualForestRights  = "individual-forest-rights"
	CommunityForestResource = "community-forest-resource"

	CommunityLabel  = "Community"
	IndividualLabel = "Individual"
)

// All priority levels supported. Tiers are assigned by global rank (thirds),
// not by absolute score thresholds.
const (
	HighPriority   PriorityLevel = "high"
	MediumPriority PriorityLevel = "medium" // default for villages with no aggregate
	LowPriority    PriorityLevel = "low"
)

// All water-availability buckets supported.
const (
	HighWater   WaterLevel = "high"   // index > 70
	MediumWater WaterLevel = "medium" // 40 < index <= 70
	LowWater    WaterLevel = "low"    // index <= 40
)

// All income buckets supported.
const (
	BelowPovertyIncome IncomeLevel = "below-poverty" // parsed area <= 1.0
	LowIncome          IncomeLevel = "low"           // parsed area <= 2.5
	MediumIncome       IncomeLevel = "medium"
)

// All sort keys supported.
const (
	SortByScore    SortKey = "score" // default
	SortByPriority SortKey = "priority"
	SortByName     SortKey = "name"
)

// All sort directions supported.
const (
	SortDesc SortDir = "desc" // default
	SortAsc  SortDir = "asc"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run-store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidPriorityLevels lists all valid priority levels.
var ValidPriorityLevels = map[PriorityLevel]struct{}{
	HighPriority:   {},
	MediumPriority: {},
	LowPriority:    {},
}

// ValidWaterLevels lists all valid water buckets.
var ValidWaterLevels = map[WaterLevel]struct{}{
	HighWater:   {},
	MediumWater: {},
	LowWater:    {},
}

// ValidIncomeLevels lists all valid income buckets.
var ValidIncomeLevels = map[IncomeLevel]struct{}{
	BelowPovertyIncome: {},
	LowIncome:          {},
	MediumIncome:       {},
}

// ValidSortKeys lists all valid sort keys.
var ValidSortKeys = map[SortKey]struct{}{
	SortByScore:    {},
	SortByPriority: {},
	SortByName:     {},
}

// ValidSortDirs lists all valid sort directions.
var ValidSortDirs = map[SortDir]struct{}{
	SortDesc: {},
	SortAsc:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid run-store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Rank maps a priority level to its numeric weight for sorting (High=3, Low=1).
func (p PriorityLevel) Rank() int {
	switch p {
	case HighPriority:
		return 3
	case MediumPriority:
		return 2
	case LowPriority:
		return 1
	default:
		return 0
	}
}
