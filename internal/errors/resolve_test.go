package errors

import (
	"fmt"
	"testing"

	"github.com/backlot-sim/backlot/internal/catalog"
	"github.com/backlot-sim/backlot/internal/engine"
	"github.com/backlot-sim/backlot/internal/engine/crisis"
	"github.com/backlot-sim/backlot/internal/engine/script"
	"github.com/backlot-sim/backlot/internal/state"
	"github.com/backlot-sim/backlot/internal/storage"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"invalid year", state.ErrInvalidYear, CodeSessionInvalidYear},
		{"duplicate id", catalog.ErrDuplicateID, CodeCatalogDuplicateID},
		{"unknown instance", crisis.ErrUnknownInstance, CodeChoiceUnknownScenario},
		{"choice out of range", crisis.ErrChoiceOutOfRange, CodeChoiceIndexOutOfRange},
		{"insufficient cash", crisis.ErrInsufficientCash, CodeChoiceInsufficientCash},
		{"unknown script", script.ErrUnknownScript, CodeScriptUnknownID},
		{"insufficient funds", engine.ErrInsufficientFunds, CodeStudioInsufficientFunds},
		{"not found", storage.ErrNotFound, CodeNotFound},
		{"unrecognized", fmt.Errorf("boom"), CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCodeOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("resolve choice: %w", crisis.ErrInsufficientCash)
	if got := CodeOf(wrapped); got != CodeChoiceInsufficientCash {
		t.Errorf("CodeOf(wrapped) = %s, want CodeChoiceInsufficientCash", got)
	}
	if !IsCode(wrapped, CodeChoiceInsufficientCash) {
		t.Error("IsCode() did not match through wrapping")
	}
}
