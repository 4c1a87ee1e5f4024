// errors.go: comprehensive error handling for intset operations
//
// This file provides structured error types using the go-errors library,
// enabling rich error context, categorization, and standardized error codes
// for all set operations.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package intset

import (
	goerrors "errors"
	"fmt"

	"github.com/agilira/go-errors"
)

// Error codes for intset operations.
const (
	// Configuration errors (1xxx)
	ErrCodeInvalidConfig    errors.ErrorCode = "INTSET_INVALID_CONFIG"
	ErrCodeInvalidNumThreads errors.ErrorCode = "INTSET_INVALID_NUM_THREADS"
	ErrCodeInvalidCapacity  errors.ErrorCode = "INTSET_INVALID_CAPACITY"

	// Programmer errors (2xxx) — passing a sentinel as a user key or a tid
	// outside the configured range is otherwise undefined behavior, so the
	// operation returns false instead, and StrictMode panics with these.
	ErrCodeInvalidKey errors.ErrorCode = "INTSET_INVALID_KEY"
	ErrCodeInvalidTid errors.ErrorCode = "INTSET_INVALID_TID"

	// Operation diagnostics (3xxx)
	ErrCodeCapacityExhausted errors.ErrorCode = "INTSET_CAPACITY_EXHAUSTED"

	// Migration errors (4xxx)
	ErrCodeMigrationInvariant errors.ErrorCode = "INTSET_MIGRATION_INVARIANT_VIOLATED"

	// Internal errors (5xxx)
	ErrCodeInternalError errors.ErrorCode = "INTSET_INTERNAL_ERROR"
)

// Common error messages.
const (
	msgInvalidNumThreads     = "invalid numThreads: must be greater than 0"
	msgInvalidCapacity       = "invalid capacity: must be greater than 0"
	msgInvalidKey            = "invalid key: sentinel values cannot be inserted or erased"
	msgInvalidTid            = "invalid tid: must be in [0, numThreads)"
	msgCapacityExhausted     = "probe chain exhausted without finding an empty slot"
	msgMigrationInvariant    = "key failed to migrate into the new table during expansion"
	msgInternalError         = "internal intset error"
)

// =============================================================================
// CONFIGURATION ERRORS
// =============================================================================

// NewErrInvalidNumThreads creates an error for a non-positive NumThreads.
func NewErrInvalidNumThreads(n int) error {
	return errors.NewWithContext(ErrCodeInvalidNumThreads, msgInvalidNumThreads, map[string]interface{}{
		"provided_num_threads": n,
		"minimum_required":     1,
	})
}

// NewErrInvalidCapacity creates an error for a non-positive Capacity.
func NewErrInvalidCapacity(capacity int) error {
	return errors.NewWithContext(ErrCodeInvalidCapacity, msgInvalidCapacity, map[string]interface{}{
		"provided_capacity": capacity,
		"minimum_required":  1,
	})
}

// =============================================================================
// PROGRAMMER ERRORS
// =============================================================================

// NewErrInvalidKey creates an error for a sentinel key passed as a user key.
func NewErrInvalidKey(key int32) error {
	return errors.NewWithField(ErrCodeInvalidKey, msgInvalidKey, "key", key)
}

// NewErrInvalidTid creates an error for a tid outside [0, numThreads).
func NewErrInvalidTid(tid, numThreads int) error {
	return errors.NewWithContext(ErrCodeInvalidTid, msgInvalidTid, map[string]interface{}{
		"tid":         tid,
		"num_threads": numThreads,
	})
}

// =============================================================================
// OPERATION DIAGNOSTICS
// =============================================================================

// NewErrCapacityExhausted describes a false return caused by a full probe
// chain in a fixed-capacity variant. Never returned from InsertIfAbsent or
// Erase themselves, whose contract is a plain bool — this exists only for
// diagnostic wrapping in benchmarks and tests that want to distinguish
// "full" from "already present".
func NewErrCapacityExhausted(capacity int) error {
	return errors.NewWithContext(ErrCodeCapacityExhausted, msgCapacityExhausted, map[string]interface{}{
		"capacity": capacity,
	}).AsRetryable()
}

// =============================================================================
// MIGRATION ERRORS
// =============================================================================

// NewErrMigrationInvariant creates the error wrapped into the panic raised
// when a migrated key fails to land in the new table — an unrecoverable
// sizing or concurrency bug, since the new table is always sized to hold
// every surviving key from the one it replaces.
func NewErrMigrationInvariant(key int32, oldCapacity, newCapacity int) error {
	return errors.NewWithContext(ErrCodeMigrationInvariant, msgMigrationInvariant, map[string]interface{}{
		"key":          key,
		"oldCapacity":  oldCapacity,
		"newCapacity":  newCapacity,
	}).WithSeverity("critical")
}

// NewErrInternal creates a generic internal error.
func NewErrInternal(operation string, cause error) error {
	if cause != nil {
		return errors.Wrap(cause, ErrCodeInternalError, msgInternalError).
			WithContext("operation", operation).
			WithSeverity("warning")
	}
	return errors.NewWithField(ErrCodeInternalError, msgInternalError, "operation", operation).
		WithSeverity("warning")
}

// =============================================================================
// ERROR CHECKING HELPERS
// =============================================================================

// IsInvalidKey checks if err is a sentinel-key programmer error.
func IsInvalidKey(err error) bool {
	return errors.HasCode(err, ErrCodeInvalidKey)
}

// IsInvalidTid checks if err is an out-of-range tid programmer error.
func IsInvalidTid(err error) bool {
	return errors.HasCode(err, ErrCodeInvalidTid)
}

// IsMigrationInvariant checks if err is a migration-invariant violation.
func IsMigrationInvariant(err error) bool {
	return errors.HasCode(err, ErrCodeMigrationInvariant)
}

// IsConfigError checks if err originates from Config validation.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		code := coder.ErrorCode()
		return code == ErrCodeInvalidNumThreads || code == ErrCodeInvalidCapacity || code == ErrCodeInvalidConfig
	}
	return false
}

// IsRetryable checks if the error can be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts context from an error.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var intsetErr *errors.Error
	if goerrors.As(err, &intsetErr) {
		return intsetErr.Context
	}
	return nil
}

// panicOrError turns err into a panic when strict is true, otherwise
// returns it unchanged. Used by the variants to implement Config.StrictMode
// for programmer errors.
func panicOrError(strict bool, err error) error {
	if strict && err != nil {
		panic(fmt.Sprintf("intset: %v", err))
	}
	return err
}
