// Package apperror provides structured errors shared by every layer.
// Domain code returns AppError; the HTTP error middleware renders it.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInternal   = "INTERNAL_ERROR"
	CodeDatabase   = "DATABASE_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeIntegrity  = "LEDGER_INTEGRITY"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeDuplicate  = "DUPLICATE_ENTRY"
)

var statusByCode = map[string]int{
	CodeInternal:   http.StatusInternalServerError,
	CodeDatabase:   http.StatusInternalServerError,
	CodeValidation: http.StatusBadRequest,
	CodeIntegrity:  http.StatusBadRequest,
	CodeNotFound:   http.StatusNotFound,
	CodeConflict:   http.StatusConflict,
	CodeDuplicate:  http.StatusConflict,
}

// AppError is the error type every layer hands to the HTTP boundary.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	HTTPStatus int            `json:"-"`
	Err        error          `json:"-"`
}

func newErr(code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: statusByCode[code]}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to the rendered details.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error. It is logged, never rendered.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// NewValidation reports a rejected input (400).
func NewValidation(message string) *AppError {
	return newErr(CodeValidation, message)
}

// NewSaleValueExceedsStock rejects an issue whose sale value is above the quantity
// on hand (400).
func NewSaleValueExceedsStock(itemCode string, onHand int64, saleValue fmt.Stringer) *AppError {
	return newErr(CodeValidation, "sale value exceeds quantity on hand").
		WithDetail("itemcode", itemCode).
		WithDetail("qty", onHand).
		WithDetail("salevalue", saleValue.String())
}

// NewIntegrity reports a movement that would leave the ledger undefined (400).
func NewIntegrity(message string) *AppError {
	return newErr(CodeIntegrity, message)
}

// NewNotFound reports a missing item, counterparty or movement (404).
func NewNotFound(entity string, key any) *AppError {
	return newErr(CodeNotFound, fmt.Sprintf("%s not found", entity)).
		WithDetail("entity", entity).
		WithDetail("key", key)
}

// NewInternal hides err behind a generic message (500).
func NewInternal(err error) *AppError {
	return newErr(CodeInternal, "Internal server error").WithCause(err)
}

// NewDatabase wraps a storage failure of op (500).
func NewDatabase(op string, err error) *AppError {
	return newErr(CodeDatabase, "Storage failure").
		WithDetail("operation", op).
		WithCause(err)
}

// NewConflict reports a key already taken by another record (409).
func NewConflict(message string) *AppError {
	return newErr(CodeConflict, message)
}

// NewDuplicate reports a unique violation on entity.field (409).
func NewDuplicate(entity, field, value string) *AppError {
	return newErr(CodeDuplicate, fmt.Sprintf("%s with this %s already exists", entity, field)).
		WithDetail("entity", entity).
		WithDetail("field", field).
		WithDetail("value", value)
}

// AsAppError extracts an AppError from the chain of err.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns the status for err, 500 for anything unknown.
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// HasCode reports whether err carries code.
func HasCode(err error, code string) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

func IsNotFound(err error) bool   { return HasCode(err, CodeNotFound) }
func IsValidation(err error) bool { return HasCode(err, CodeValidation) }
func IsIntegrity(err error) bool  { return HasCode(err, CodeIntegrity) }

// IsConflict covers both CodeConflict and CodeDuplicate.
func IsConflict(err error) bool {
	return HasCode(err, CodeConflict) || HasCode(err, CodeDuplicate)
}
