package models

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when a filter selection matches no trips. It is
// a terminal state for the current cycle, not a failure.
var ErrEmptyResult = errors.New("no trips match the selected filters")

// EmptyResultMessage is shown to the user for ErrEmptyResult
const EmptyResultMessage = "No trips match the selected filters. Try adjusting the date range, hours, or payment types."

// User-facing validation messages
const (
	MsgSelectPayment   = "Please select at least one payment type."
	MsgSelectDateRange = "Please select both a start and end date."
	MsgDateOrder       = "The start date must not be after the end date."
	MsgHourRange       = "The hour range must be within 0-23 with the start hour not after the end hour."
	MsgPaymentCode     = "Payment types must be codes 1-5."
)

// DataLoadError reports a missing or malformed source file. It is fatal at
// startup.
type DataLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	msg := fmt.Sprintf("load %s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// NewDataLoadError creates a DataLoadError for path
func NewDataLoadError(path, reason string, err error) *DataLoadError {
	return &DataLoadError{Path: path, Reason: reason, Err: err}
}

// ValidationError reports an incomplete or invalid filter selection. Message
// is safe to show to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid selection: " + e.Message
	}
	return fmt.Sprintf("invalid selection (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsDataLoadError reports whether err is or wraps a DataLoadError
func IsDataLoadError(err error) bool {
	var e *DataLoadError
	return errors.As(err, &e)
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
