// Package errors provides machine-readable error codes for the studio
// simulation core.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Session errors
	CodeSessionEmptyID      Code = "SESSION_EMPTY_ID"
	CodeSessionInvalidYear  Code = "SESSION_INVALID_YEAR"
	CodeSessionInvalidMonth Code = "SESSION_INVALID_MONTH"

	// Catalog errors
	CodeCatalogEmptyEntryID    Code = "CATALOG_EMPTY_ENTRY_ID"
	CodeCatalogDuplicateID     Code = "CATALOG_DUPLICATE_ID"
	CodeCatalogInvalidType     Code = "CATALOG_INVALID_TYPE"
	CodeCatalogInvalidDuration Code = "CATALOG_INVALID_DURATION"

	// Choice resolution errors
	CodeChoiceUnknownScenario  Code = "CHOICE_UNKNOWN_SCENARIO"
	CodeChoiceIndexOutOfRange  Code = "CHOICE_INDEX_OUT_OF_RANGE"
	CodeChoiceInsufficientCash Code = "CHOICE_INSUFFICIENT_CASH"
	CodeChoiceAlreadyResolved  Code = "CHOICE_ALREADY_RESOLVED"

	// Script errors
	CodeScriptUnknownID    Code = "SCRIPT_UNKNOWN_ID"
	CodeScriptNotAvailable Code = "SCRIPT_NOT_AVAILABLE"
	CodeScriptNotOptioned  Code = "SCRIPT_NOT_OPTIONED"

	// Studio errors
	CodeStudioInsufficientFunds Code = "STUDIO_INSUFFICIENT_FUNDS"

	// Random/seed errors
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
