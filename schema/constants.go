package schema

// FeatureKind describes how a feature's values are interpreted.
type FeatureKind string

// Feature kinds.
const (
	NumericalKind   FeatureKind = "numerical"   // Continuous values tested with KS + PSI
	CategoricalKind FeatureKind = "categorical" // Discrete values tested with chi-square
)

// DriftMetric identifies which test produced a drift result.
type DriftMetric string

// Drift metrics.
const (
	KSPSIMetric     DriftMetric = "ks+psi"     // Two-sample KS test plus PSI
	ChiSquareMetric DriftMetric = "chi-square" // Chi-square goodness-of-fit
	MissingMetric   DriftMetric = "missing"    // Feature absent from the current batch
	SkippedMetric   DriftMetric = "skipped"    // Feature could not be tested (type mismatch etc.)
)

// Severity grades how far a feature has drifted.
type Severity string

// Drift severities, ordered none < minor < major.
const (
	SeverityNone  Severity = "none"
	SeverityMinor Severity = "minor"
	SeverityMajor Severity = "major"
)

// MetricStatus is the verdict of a single fairness metric.
type MetricStatus string

// Fairness metric statuses.
const (
	MetricPass          MetricStatus = "pass"
	MetricFail          MetricStatus = "fail"
	MetricNotApplicable MetricStatus = "not_applicable" // Too few groups or no ground truth
)

// OutputMode is the output format mode.
type OutputMode string

// Output modes.
const (
	TextOut OutputMode = "text" // Human-readable table output
	CSVOut  OutputMode = "csv"  // CSV output
	JSONOut OutputMode = "json" // JSON output
)

// ValidOutputModes is a set of valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// DatabaseBackend is the observation store backend type.
type DatabaseBackend string

// Database backends for observation storage.
const (
	MemoryBackend     DatabaseBackend = "memory"     // In-process store, lost on exit
	SQLiteBackend     DatabaseBackend = "sqlite"     // SQLite database backend
	MySQLBackend      DatabaseBackend = "mysql"      // MySQL database backend
	PostgreSQLBackend DatabaseBackend = "postgresql" // PostgreSQL database backend
)

// ValidDatabaseBackends is a set of valid observation store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	MemoryBackend:     {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}
