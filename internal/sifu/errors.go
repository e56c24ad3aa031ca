package sifu

import (
	"errors"
	"fmt"
)

// ValidationCode categorizes validation errors.
type ValidationCode string

const (
	// CodeMissingRate indicates a required rate or time field is absent
	// and no default applies.
	CodeMissingRate ValidationCode = "MISSING_RATE"

	// CodeInvalidParameter indicates a negative or non-finite numeric
	// input, or a structurally invalid field.
	CodeInvalidParameter ValidationCode = "INVALID_PARAMETER"

	// CodeInvalidBeta indicates beta or betaD outside [0,1].
	CodeInvalidBeta ValidationCode = "INVALID_BETA"

	// CodeInvalidRatio indicates rDU+rDD deviates from 1 beyond tolerance.
	CodeInvalidRatio ValidationCode = "INVALID_RATIO"

	// CodeModeMismatch indicates paired channels declare different
	// demand modes.
	CodeModeMismatch ValidationCode = "MODE_MISMATCH"

	// CodePartitionInvariant indicates a component was counted zero or
	// more than once during aggregation. This is an internal consistency
	// check and should never surface from correct input.
	CodePartitionInvariant ValidationCode = "PARTITION_INVARIANT"
)

// ValidationError reports why a component record (or assumption set) cannot
// contribute to an aggregation. The offending component's identifier is
// carried so callers can surface it; an empty ComponentID means the error
// concerns the SIFU or the global assumptions.
type ValidationError struct {
	// Code identifies the error category.
	Code ValidationCode

	// ComponentID identifies the offending component, if any.
	ComponentID string

	// Field names the offending input field, if any.
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch {
	case e.ComponentID != "" && e.Field != "":
		return fmt.Sprintf("%s: %s (component=%s, field=%s)", e.Code, e.Message, e.ComponentID, e.Field)
	case e.ComponentID != "":
		return fmt.Sprintf("%s: %s (component=%s)", e.Code, e.Message, e.ComponentID)
	case e.Field != "":
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the validation code from an error, or "" if the error is
// not a ValidationError. Uses errors.As to handle wrapped errors.
func CodeOf(err error) ValidationCode {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

// IsMissingRate reports whether err is a MISSING_RATE validation error.
func IsMissingRate(err error) bool { return CodeOf(err) == CodeMissingRate }

// IsInvalidParameter reports whether err is an INVALID_PARAMETER validation error.
func IsInvalidParameter(err error) bool { return CodeOf(err) == CodeInvalidParameter }

// IsInvalidBeta reports whether err is an INVALID_BETA validation error.
func IsInvalidBeta(err error) bool { return CodeOf(err) == CodeInvalidBeta }

// IsInvalidRatio reports whether err is an INVALID_RATIO validation error.
func IsInvalidRatio(err error) bool { return CodeOf(err) == CodeInvalidRatio }

// IsModeMismatch reports whether err is a MODE_MISMATCH validation error.
func IsModeMismatch(err error) bool { return CodeOf(err) == CodeModeMismatch }

// IsPartitionInvariant reports whether err is a PARTITION_INVARIANT error.
func IsPartitionInvariant(err error) bool { return CodeOf(err) == CodePartitionInvariant }

// NewMissingRate creates a MISSING_RATE error for a component field.
func NewMissingRate(componentID, field, message string) *ValidationError {
	return &ValidationError{Code: CodeMissingRate, ComponentID: componentID, Field: field, Message: message}
}

// NewInvalidParameter creates an INVALID_PARAMETER error.
func NewInvalidParameter(componentID, field, message string) *ValidationError {
	return &ValidationError{Code: CodeInvalidParameter, ComponentID: componentID, Field: field, Message: message}
}

// NewInvalidBeta creates an INVALID_BETA error for a value outside [0,1].
func NewInvalidBeta(componentID, field string, value float64) *ValidationError {
	return &ValidationError{
		Code:        CodeInvalidBeta,
		ComponentID: componentID,
		Field:       field,
		Message:     fmt.Sprintf("common-cause fraction must be within [0,1], got %g", value),
	}
}

// NewInvalidRatio creates an INVALID_RATIO error for DU/DD fractions that
// do not sum to 1.
func NewInvalidRatio(componentID string, sum float64) *ValidationError {
	return &ValidationError{
		Code:        CodeInvalidRatio,
		ComponentID: componentID,
		Field:       "ratio_du+ratio_dd",
		Message:     fmt.Sprintf("DU/DD fractions must sum to 1, got %g", sum),
	}
}

// NewModeMismatch creates a MODE_MISMATCH error for a redundant pair whose
// channels declare different demand modes.
func NewModeMismatch(componentA, componentB string, modeA, modeB DemandMode) *ValidationError {
	return &ValidationError{
		Code:        CodeModeMismatch,
		ComponentID: componentA,
		Message:     fmt.Sprintf("paired channel %s declares mode %s, partner %s declares %s", componentA, modeA, componentB, modeB),
	}
}

// NewPartitionInvariant creates a PARTITION_INVARIANT error.
func NewPartitionInvariant(componentID, message string) *ValidationError {
	return &ValidationError{Code: CodePartitionInvariant, ComponentID: componentID, Message: message}
}
