package errors

import (
	"fmt"
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Sentinel causes. Match them with Is, never by message.
var (
	ErrBatchMismatch      = crdb.New("batch columns have differing lengths")
	ErrAlreadyCracked     = crdb.New("column is already cracked")
	ErrNotCracked         = crdb.New("column is not cracked")
	ErrOverlappingRanges  = crdb.New("swap ranges overlap")
	ErrOutOfBounds        = crdb.New("range out of bounds")
	ErrInvalidPermutation = crdb.New("invalid row permutation")
	ErrColumnNotFound     = crdb.New("column not found")
	ErrUnknownStrategy    = crdb.New("unknown run-merge strategy")
)

// PreconditionError reports a call that was rejected before it touched any
// state (mismatched batches, double initialisation, bad swap ranges, ...).
type PreconditionError struct {
	Op     string // operation that rejected the call, e.g. "insert", "swap"
	Table  string // table name (empty if not table-scoped)
	Column string // column name (empty if not column-scoped)
	Reason string // human-readable explanation (optional)
	Err    error  // sentinel cause
}

func (e *PreconditionError) Error() string {
	var parts []string

	target := e.Column
	if e.Table != "" {
		target = e.Table + "." + e.Column
	}
	parts = append(parts, fmt.Sprintf("precondition failed in %s(%s)", e.Op, strings.TrimSuffix(target, ".")))

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// LookupError reports a column name that does not resolve against a schema.
type LookupError struct {
	Table  string
	Column string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s.%s", ErrColumnNotFound.Error(), e.Table, e.Column)
}

func (e *LookupError) Unwrap() error { return ErrColumnNotFound }

// NewBatchMismatch reports a batch column whose length differs from the first.
func NewBatchMismatch(table, column string, want, got int) *PreconditionError {
	return &PreconditionError{
		Op:     "insert",
		Table:  table,
		Column: column,
		Reason: fmt.Sprintf("expected %d values, got %d", want, got),
		Err:    ErrBatchMismatch,
	}
}

// NewAlreadyCracked reports a second InitializeCracked on the same column.
func NewAlreadyCracked(column string) *PreconditionError {
	return &PreconditionError{
		Op:     "initialize",
		Column: column,
		Err:    ErrAlreadyCracked,
	}
}

// NewOverlappingSwap reports swap ranges that share a slot.
func NewOverlappingSwap(length, a, b int) *PreconditionError {
	return &PreconditionError{
		Op:     "swap",
		Reason: fmt.Sprintf("[%d,%d) and [%d,%d)", a, a+length, b, b+length),
		Err:    ErrOverlappingRanges,
	}
}

// NewOutOfBoundsSwap reports a swap range outside a column of length n.
func NewOutOfBoundsSwap(length, a, b, n int) *PreconditionError {
	return &PreconditionError{
		Op:     "swap",
		Reason: fmt.Sprintf("[%d,%d) and [%d,%d) with length %d", a, a+length, b, b+length, n),
		Err:    ErrOutOfBounds,
	}
}

// NewInvalidPermutation reports a reorder that is not a permutation of the rows.
func NewInvalidPermutation(reason string) *PreconditionError {
	return &PreconditionError{
		Op:     "reorder",
		Reason: reason,
		Err:    ErrInvalidPermutation,
	}
}

// Is, As and AssertionFailedf re-export the cockroachdb helpers so callers
// need a single errors import.
func Is(err, target error) bool { return crdb.Is(err, target) }

func As(err error, target any) bool { return crdb.As(err, target) }

func AssertionFailedf(format string, args ...any) error {
	return crdb.AssertionFailedf(format, args...)
}

func IsAssertionFailure(err error) bool { return crdb.IsAssertionFailure(err) }
