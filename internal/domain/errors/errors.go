package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidAddress      = errors.New("invalid wallet address")
	ErrInvalidSignature    = errors.New("invalid signature or expired nonce")
	ErrWalletRegistered    = errors.New("wallet address already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientFunds   = errors.New("insufficient balance")
	ErrInvalidProof        = errors.New("invalid or failed transaction hash")
	ErrAlreadyFinalized    = errors.New("transaction already finalized")
	ErrChainUnavailable    = errors.New("blockchain endpoint unavailable")
	ErrLinkNotFound        = errors.New("payment link not found or inactive")
	ErrLinkAmountMismatch  = errors.New("amount does not match payment link")
	ErrLinkAmountRequired  = errors.New("fixed-amount payment link requires an amount")
	ErrUserNotRegistered   = errors.New("user not registered")
)

// Error codes returned in the response envelope
const (
	CodeValidation          = "ERR_VALIDATION"
	CodeUnauthorized        = "ERR_UNAUTHORIZED"
	CodeForbidden           = "ERR_FORBIDDEN"
	CodeNotFound            = "ERR_NOT_FOUND"
	CodeConflict            = "ERR_CONFLICT"
	CodeInvalidProof        = "ERR_INVALID_PROOF"
	CodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
	CodeInternalError       = "ERR_INTERNAL"
	CodeRateLimited         = "ERR_RATE_LIMITED"
	CodeIdempotencyConflict = "ERR_IDEMPOTENCY_CONFLICT"
)

// AppError represents an application error with an HTTP status and a
// machine-readable code
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error prefers Message: it carries the per-case detail, while Err is the
// coarse sentinel kept for errors.Is matching.
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func InvalidProof(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidProof, message, ErrInvalidProof)
}

func UpstreamUnavailable(message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, CodeUpstreamUnavailable, message, ErrChainUnavailable)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: message,
		Err:     err,
	}
}

// FromError maps any error to an AppError for the response envelope.
// Unrecognized errors collapse to an opaque 500 so internals do not leak.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrInvalidAddress),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrLinkAmountMismatch),
		errors.Is(err, ErrLinkAmountRequired),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrBadRequest):
		return NewAppError(http.StatusBadRequest, CodeValidation, err.Error(), err)
	case errors.Is(err, ErrInvalidProof):
		return NewAppError(http.StatusBadRequest, CodeInvalidProof, err.Error(), err)
	case errors.Is(err, ErrInvalidSignature),
		errors.Is(err, ErrUnauthorized):
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, err.Error(), err)
	case errors.Is(err, ErrForbidden):
		return NewAppError(http.StatusForbidden, CodeForbidden, err.Error(), err)
	case errors.Is(err, ErrUserNotRegistered):
		return NewAppError(http.StatusNotFound, CodeNotFound, "user not registered, registration required", err)
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrRecipientNotFound),
		errors.Is(err, ErrLinkNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, err.Error(), err)
	case errors.Is(err, ErrWalletRegistered),
		errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrAlreadyFinalized),
		errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, CodeConflict, err.Error(), err)
	case errors.Is(err, ErrChainUnavailable):
		return NewAppError(http.StatusServiceUnavailable, CodeUpstreamUnavailable, err.Error(), err)
	default:
		return InternalError(err)
	}
}
