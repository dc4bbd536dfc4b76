package errors

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ConfigIndex is the Index reported by validation errors that concern the
// engine configuration rather than a specific input item.
const ConfigIndex = -1

// ValidationError reports malformed input to the layout engine.
//
// Index is the position of the offending item in the caller's input slice,
// or [ConfigIndex] for configuration errors. Field names the attribute that
// failed ("weight", "category", "id", "width", ...).
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code(), e.Message())
}

// Message returns the error text without the code prefix.
func (e *ValidationError) Message() string {
	if e.Index == ConfigIndex {
		return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("item %d: %s: %s", e.Index, e.Field, e.Reason)
}

// Code returns ErrCodeInvalidItem for item errors and ErrCodeInvalidConfig
// for configuration errors.
func (e *ValidationError) Code() Code {
	if e.Index == ConfigIndex {
		return ErrCodeInvalidConfig
	}
	return ErrCodeInvalidItem
}

// Invalid creates a ValidationError for the item at index.
func Invalid(index int, field, format string, args ...any) *ValidationError {
	return &ValidationError{Index: index, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InvalidConfig creates a ValidationError for a configuration field.
func InvalidConfig(field, format string, args ...any) *ValidationError {
	return Invalid(ConfigIndex, field, format, args...)
}

// AsValidation returns the first *ValidationError in err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// ValidateWeight checks that w is a finite, non-negative number.
func ValidateWeight(index int, w float64) error {
	switch {
	case math.IsNaN(w) || math.IsInf(w, 0):
		return Invalid(index, "weight", "must be finite, got %v", w)
	case w < 0:
		return Invalid(index, "weight", "must be non-negative, got %v", w)
	}
	return nil
}

// ValidateCategory checks that the category is present.
func ValidateCategory(index int, category string) error {
	if strings.TrimSpace(category) == "" {
		return Invalid(index, "category", "is required")
	}
	return nil
}

// ValidateDimension checks that a canvas dimension is finite and positive.
func ValidateDimension(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return InvalidConfig(field, "must be a positive finite number, got %v", v)
	}
	return nil
}
