/*
errors.go - Centralized error types for the calculation engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The engine distinguishes two failure layers:

  1. Configuration errors (unknown method, unknown currency, missing
     tier/scale/hybrid config with no default) - returned as Go errors,
     fail fast, caller decides whether to retry with other config.
  2. Validation findings (negative total, below-minimum, unusually high)
     - NOT errors; recorded as Finding values inside the result so the
     breakdown stays reviewable. See totals.go.

USAGE:
  Callers can test categories:

    if royalty.IsConfigError(err) {
        // reject the contract configuration, not the record
    }

SEE ALSO:
  - methods.go: Raises UnknownMethodError
  - currency.go: Raises UnknownCurrencyError
  - store.go: Collaborator store interfaces using the not-found sentinels
*/
package royalty

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnknownMethod is returned when a record names a calculation
	// method outside the closed six-method set.
	ErrUnknownMethod = errors.New("unknown calculation method")

	// ErrUnknownCurrency is returned when no exchange rate exists for the
	// record's reporting currency.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrMissingTiers is returned when a tiered calculation has neither
	// contract tiers nor a default template.
	ErrMissingTiers = errors.New("no tier configuration available")

	// ErrMissingScales is returned when a sliding-scale calculation has
	// neither contract bands nor a default template.
	ErrMissingScales = errors.New("no sliding-scale configuration available")

	// ErrMissingHybrid is returned when a hybrid calculation has no
	// components configured anywhere.
	ErrMissingHybrid = errors.New("no hybrid components configured")

	// ErrNestedHybrid is returned when a hybrid component names the
	// hybrid method itself.
	ErrNestedHybrid = errors.New("hybrid components cannot nest hybrid")

	// ErrRecordNotFound / ErrContractNotFound / ErrAuditNotFound are the
	// not-found sentinels shared by the store implementations.
	ErrRecordNotFound   = errors.New("royalty record not found")
	ErrContractNotFound = errors.New("contract not found")
	ErrAuditNotFound    = errors.New("audit record not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnknownMethodError reports the offending method string.
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown calculation method: %q", e.Method)
}

func (e *UnknownMethodError) Unwrap() error { return ErrUnknownMethod }

// UnknownCurrencyError reports the currency with no configured rate.
type UnknownCurrencyError struct {
	Currency Currency
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("no exchange rate configured for %s", e.Currency)
}

func (e *UnknownCurrencyError) Unwrap() error { return ErrUnknownCurrency }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConfigError returns true for errors the caller can fix by supplying
// different configuration (method, currency, or calculation params).
func IsConfigError(err error) bool {
	return errors.Is(err, ErrUnknownMethod) ||
		errors.Is(err, ErrUnknownCurrency) ||
		errors.Is(err, ErrMissingTiers) ||
		errors.Is(err, ErrMissingScales) ||
		errors.Is(err, ErrMissingHybrid) ||
		errors.Is(err, ErrNestedHybrid)
}

// IsNotFound returns true if the error indicates a missing stored entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrContractNotFound) ||
		errors.Is(err, ErrAuditNotFound)
}
