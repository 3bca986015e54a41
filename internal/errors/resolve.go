package errors

import (
	"errors"

	"github.com/backlot-sim/backlot/internal/catalog"
	"github.com/backlot-sim/backlot/internal/engine"
	"github.com/backlot-sim/backlot/internal/engine/crisis"
	"github.com/backlot-sim/backlot/internal/engine/script"
	"github.com/backlot-sim/backlot/internal/state"
	"github.com/backlot-sim/backlot/internal/storage"
)

// CodeOf maps a domain error to its machine-readable code. Unrecognized
// errors resolve to CodeUnknown.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, state.ErrInvalidYear):
		return CodeSessionInvalidYear
	case errors.Is(err, state.ErrInvalidMonth):
		return CodeSessionInvalidMonth
	case errors.Is(err, catalog.ErrEmptyEntryID):
		return CodeCatalogEmptyEntryID
	case errors.Is(err, catalog.ErrDuplicateID):
		return CodeCatalogDuplicateID
	case errors.Is(err, catalog.ErrInvalidDuration):
		return CodeCatalogInvalidDuration
	case errors.Is(err, crisis.ErrUnknownInstance):
		return CodeChoiceUnknownScenario
	case errors.Is(err, crisis.ErrChoiceOutOfRange):
		return CodeChoiceIndexOutOfRange
	case errors.Is(err, crisis.ErrInsufficientCash):
		return CodeChoiceInsufficientCash
	case errors.Is(err, crisis.ErrAlreadyResolved):
		return CodeChoiceAlreadyResolved
	case errors.Is(err, script.ErrUnknownScript):
		return CodeScriptUnknownID
	case errors.Is(err, script.ErrScriptUnavailable):
		return CodeScriptNotAvailable
	case errors.Is(err, engine.ErrInsufficientFunds):
		return CodeStudioInsufficientFunds
	case errors.Is(err, storage.ErrNotFound):
		return CodeNotFound
	default:
		return CodeUnknown
	}
}

// IsCode reports whether the error resolves to the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
