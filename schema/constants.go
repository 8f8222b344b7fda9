package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for state and run storage.
	DatabaseBackend string

	// ChartKind identifies which chart a layout belongs to.
	ChartKind string

	// AmountScale selects how the line chart derives its vertical maximum.
	AmountScale string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	PNGOut     OutputMode = "png"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All chart kinds supported.
const (
	PieChart  ChartKind = "pie"
	LineChart ChartKind = "line"
)

// All amount scales supported.
const (
	CategoryTotalScale AmountScale = "category-total" // default
	RecordMaxScale     AmountScale = "record-max"
)

// Geometry constants shared by the layout engines and planners.
const (
	FullRotation = 360.0 // degrees in a full pie rotation
	InitialAngle = 0.0   // angle of the first sector, 3 o'clock in Y-down space
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
	PNGOut:     {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidAmountScales lists all valid amount scales.
var ValidAmountScales = map[AmountScale]struct{}{
	CategoryTotalScale: {},
	RecordMaxScale:     {},
}
