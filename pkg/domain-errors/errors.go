// Package domainerrors carries typed, code-tagged errors across service boundaries.
//
// Services return *Error values; transports translate the Code into a response.
// Infrastructure layers return pkg/platform/sentinel errors which services wrap
// with a code via Wrap.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies the kind of failure independent of transport.
type Code string

const (
	// Authorization and identity
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"

	// Record presence
	CodeNotFound         Code = "not_found"
	CodeDuplicateRequest Code = "duplicate_request"
	CodeAlreadyApproved  Code = "already_approved"

	// Parameters outside an allowed enumeration
	CodeInvalidStatus  Code = "invalid_status"
	CodeInvalidVoucher Code = "invalid_voucher"

	// Ownership and purchase preconditions
	CodeNotOwner          Code = "not_owner"
	CodeNotForSale        Code = "not_for_sale"
	CodeSelfPurchase      Code = "self_purchase"
	CodeInsufficientFunds Code = "insufficient_funds"

	// A data-model invariant was violated. Signals a bug, not user error.
	CodeInternalInconsistency Code = "internal_inconsistency"

	CodeBadRequest Code = "bad_request"
	CodeValidation Code = "validation_error"
	CodeConflict   Code = "conflict"
	CodeTimeout     Code = "timeout"
	CodeUnavailable Code = "unavailable"
	CodeInternal   Code = "internal_error"
)

// Error is a domain error with a stable code and a human-readable message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether any domain error in err's chain carries code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf returns the outermost domain error code in err's chain.
// Errors without a domain code report CodeInternal.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost domain error message, or a generic message.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}
