package errors

import (
	"errors"

	"github.com/seededlabs/seedpool/jsonx"
)

// StakeErrorCode represents standardized error codes for staking operations
type StakeErrorCode string

const (
	// General errors
	ErrCodeInternal StakeErrorCode = "internal_error"

	// Validation errors
	ErrCodeInvalidRequest StakeErrorCode = "invalid_request"
	ErrCodeInvalidAddress StakeErrorCode = "invalid_address"
	ErrCodeInvalidAmount  StakeErrorCode = "invalid_amount"

	// Authorization errors. Never retried: the caller identity does not
	// match the record owner or the pool authority.
	ErrCodeUnauthorized StakeErrorCode = "unauthorized"

	// Precondition errors. The caller may remediate (bootstrap first,
	// initialize the pool) and retry.
	ErrCodePoolNotInitialized StakeErrorCode = "pool_not_initialized"
	ErrCodeRecordNotFound     StakeErrorCode = "record_not_found"
	ErrCodeRecordExists       StakeErrorCode = "record_exists"
	ErrCodeAccountNotFound    StakeErrorCode = "account_not_found"

	// Business logic errors
	ErrCodeInsufficientBalance StakeErrorCode = "insufficient_balance"
	ErrCodeNothingStaked       StakeErrorCode = "nothing_staked"

	// System errors
	ErrCodeDerivationFailed  StakeErrorCode = "derivation_failed"
	ErrCodeLedgerUnavailable StakeErrorCode = "ledger_unavailable"
)

// StakeError represents a standardized staking error
type StakeError struct {
	Code    StakeErrorCode `json:"code"`
	Message string         `json:"message"`
}

// Error implements the error interface
func (e *StakeError) Error() string {
	body, _ := jsonx.Marshal(StakeError{
		Code:    e.Code,
		Message: e.Message,
	})
	return string(body)
}

// Is lets errors.Is match two StakeErrors by code
func (e *StakeError) Is(target error) bool {
	var other *StakeError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Error message constants - user-friendly and concise
const (
	ErrMsgInvalidRequest      = "Request format is invalid"
	ErrMsgInvalidAddress      = "Participant address is invalid"
	ErrMsgInvalidAmount       = "Amount is invalid or zero"
	ErrMsgUnauthorized        = "Caller does not own this stake record"
	ErrMsgPoolNotInitialized  = "Staking pool has not been initialized"
	ErrMsgRecordNotFound      = "Stake record does not exist, bootstrap first"
	ErrMsgRecordExists        = "Stake record already exists at this address"
	ErrMsgAccountNotFound     = "Token account does not exist"
	ErrMsgInsufficientBalance = "Not enough balance for this operation"
	ErrMsgNothingStaked       = "No tokens are currently staked"
	ErrMsgDerivationFailed    = "No valid bump found for derived address"
	ErrMsgLedgerUnavailable   = "Ledger storage error, safe to retry"
	ErrMsgInternal            = "Server error, please try again"
)

// NewError creates a new StakeError and returns it as error interface
func NewError(code StakeErrorCode, message string) error {
	return &StakeError{
		Code:    code,
		Message: message,
	}
}

// CodeOf extracts the StakeErrorCode from an error chain, or
// ErrCodeInternal when the error is not a StakeError.
func CodeOf(err error) StakeErrorCode {
	var se *StakeError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}
