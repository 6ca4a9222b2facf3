package textvec

import (
	"fmt"
	"strings"

	"github.com/cognicore/textvec/pkg/textvec/internalerr"
)

// ConfigError reports a stage name that is not present in its registry.
type ConfigError struct {
	Slot  string   // pipeline slot, e.g. "tokenizer"
	Name  string   // the unknown name
	Valid []string // registered names, sorted
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unknown %s %q (valid: %s)",
		e.Slot, e.Name, strings.Join(e.Valid, ", "))
}

func (e *ConfigError) Unwrap() error { return internalerr.ErrUnknownStage }

// CapacityError reports a dense export that would exceed the caller's
// entry budget.
type CapacityError struct {
	Entries    int // rows x cols of the requested dense matrix
	MaxEntries int // the caller's budget
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf(
		"dense export of %d entries exceeds budget of %d; raise the budget or select fewer rows",
		e.Entries, e.MaxEntries)
}

func (e *CapacityError) Unwrap() error { return internalerr.ErrCapacityExceeded }
