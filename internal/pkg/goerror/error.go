package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound signals that a row or resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a uniqueness or state conflict.
	ErrConflict = errors.New("conflict")
)

// Type buckets an error by who has to act on it.
type Type int

const (
	// TypeServer is an infrastructure or programming failure.
	TypeServer Type = iota
	// TypeBusiness is a domain rule the caller violated.
	TypeBusiness
	// TypeValidation is malformed or incomplete input.
	TypeValidation
)

// String returns the wire representation of the type.
func (t Type) String() string {
	switch t {
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	default:
		return "ERROR_TYPE_SERVER"
	}
}

// Code is a stable identifier that decides the HTTP status of a response.
type Code int

const (
	// CodeInternal is the fallback for unclassified failures.
	CodeInternal Code = iota
	// CodeInvalidFormat marks an unparseable request body.
	CodeInvalidFormat
	// CodeInvalidInput marks a parseable body that failed validation.
	CodeInvalidInput
	// CodeNotFound marks a missing resource.
	CodeNotFound
	// CodeConflict marks duplicates and state conflicts.
	CodeConflict
	// CodeTooManyRequest marks rate or attempt limits.
	CodeTooManyRequest
	// CodeUnauthorized marks missing or bad credentials.
	CodeUnauthorized
	// CodeForbidden marks an authenticated caller without permission.
	CodeForbidden
	// CodeDependency marks an upstream dependency failure, such as a mail
	// relay refusing a message.
	CodeDependency
)

// String returns the wire representation of the code.
func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeConflict:
		return "ERROR_CODE_CONFLICT"
	case CodeTooManyRequest:
		return "ERROR_CODE_TOO_MANY_REQUESTS"
	case CodeUnauthorized:
		return "ERROR_CODE_UNAUTHORIZED"
	case CodeForbidden:
		return "ERROR_CODE_FORBIDDEN"
	case CodeDependency:
		return "ERROR_CODE_DEPENDENCY"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error carries a user-facing message, a type, a code, and optionally the
// underlying cause plus per-field validation messages. Everything outbound
// goes through it so handlers never leak raw errors.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "validation failed"
	case TypeBusiness:
		return "business rule violated"
	default:
		return "internal error"
	}
}

// String renders the full error for logs.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

// Msg returns the user-facing message.
func (e *Error) Msg() string { return e.msg }

// Type returns the error bucket.
func (e *Error) Type() Type { return e.errType }

// Code returns the stable code.
func (e *Error) Code() Code { return e.code }

// Fields returns per-field validation messages, nil when not a field error.
func (e *Error) Fields() map[string]string { return e.fields }

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the code to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat:
		return http.StatusBadRequest
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func build(err error, msg string, t Type, c Code) error {
	return &Error{err: err, msg: msg, errType: t, code: c}
}

// NewServer wraps an unexpected failure. The caller only sees a generic
// message; the cause stays available for logging.
func NewServer(err error) error {
	return build(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness creates a business error with the given message and code.
func NewBusiness(msg string, code Code) error {
	return build(nil, msg, TypeBusiness, code)
}

// NewDependency creates an error for a failed upstream call, such as an OTP
// email that could not be dispatched.
func NewDependency(msg string) error {
	return build(nil, msg, TypeBusiness, CodeDependency)
}

// NewInvalidInput creates a validation error. With an error argument it wraps
// the validator output; with key/value pairs it carries explicit per-field
// messages.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return build(err, "Validation error", TypeValidation, CodeInvalidInput)
	}
	if len(kv)%2 != 0 {
		return build(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}

	fe := &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput, fields: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		fe.fields[kv[i]] = kv[i+1]
	}

	return fe
}

// NewInvalidFormat creates an error for a request body that could not be
// decoded at all.
func NewInvalidFormat(msgs ...string) error {
	if len(msgs) == 0 {
		return build(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}
	return build(nil, msgs[0], TypeValidation, CodeInvalidFormat)
}
