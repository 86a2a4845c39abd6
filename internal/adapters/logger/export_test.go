// export_test.go exports private identifiers for white-box testing.
package logger

// ErrorEntry exposes the private error entry type for tests.
type ErrorEntry = errorEntry

// Exported aliases for the private error formatting helpers.
var (
	CollectErrorEntriesExported = collectErrorEntries
	FormatErrorEntriesExported  = formatErrorEntries
)
