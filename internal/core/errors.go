package core

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the engine and ledger.
var (
	// ErrInvalidAmount is returned for non-numeric, negative, or
	// out-of-range monetary amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrMissingDate is returned when a payment lacks a date.
	ErrMissingDate = errors.New("missing date")

	// ErrInvalidDuration is returned for installment plans outside the
	// supported 1-60 period range.
	ErrInvalidDuration = errors.New("invalid installment duration")

	// ErrDuplicateDeposit is returned when a second deposit-like payment
	// would be created while one already exists.
	ErrDuplicateDeposit = errors.New("a deposit already exists")

	// ErrDepositImmutable is returned when a caller tries to toggle the
	// paid state of a deposit. Deposits are always paid.
	ErrDepositImmutable = errors.New("deposit payments are always paid")

	// ErrPaymentNotFound is returned when a payment id does not match
	// any record in the ledger.
	ErrPaymentNotFound = errors.New("payment not found")
)

// ValidationError marks malformed user input. The requested mutation is
// blocked and no state changes.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// CalculationError marks an internal fault on a single work item or
// computation step. Aggregation folds these into the result's errors
// instead of aborting the pass.
type CalculationError struct {
	Subject string
	Reason  string
	Err     error
}

func (e *CalculationError) Error() string {
	if e.Subject == "" {
		return "calculation: " + e.Reason
	}
	return fmt.Sprintf("calculation: %s: %s", e.Subject, e.Reason)
}

func (e *CalculationError) Unwrap() error { return e.Err }

// ConsistencyError marks input that contradicts the estimate's own state,
// such as a duplicate deposit or a work item referencing an unknown
// catalog entry. When a safe default exists the engine auto-repairs and
// logs a warning instead of returning one of these.
type ConsistencyError struct {
	Reason string
	Err    error
}

func (e *ConsistencyError) Error() string { return "consistency: " + e.Reason }

func (e *ConsistencyError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConsistency reports whether err is (or wraps) a ConsistencyError.
func IsConsistency(err error) bool {
	var ce *ConsistencyError
	return errors.As(err, &ce)
}
