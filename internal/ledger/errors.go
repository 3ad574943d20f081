package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrAccountNotFound indicates the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount indicates an account with the same ID already exists.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalidAccountID indicates an empty or otherwise unusable account ID.
	ErrInvalidAccountID = errors.New("invalid account id")

	// ErrInvalidAmount indicates a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds indicates the operation would drive a balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSameAccount indicates a transfer naming the same account on both sides.
	ErrSameAccount = errors.New("transfer source and destination are the same account")

	// ErrStoreUnavailable indicates the backing store could not complete the
	// operation. The only error kind worth a caller-side retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// NotFoundError reports which account was missing. Unwraps to
// ErrAccountNotFound so errors.Is keeps working.
type NotFoundError struct {
	AccountID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("account %q not found", e.AccountID)
}

func (e *NotFoundError) Unwrap() error { return ErrAccountNotFound }

// InsufficientFundsError carries the current balance and the requested
// amount so callers can report both. Unwraps to ErrInsufficientFunds.
type InsufficientFundsError struct {
	AccountID string
	Balance   int64
	Requested int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds on account %q: balance %d, requested %d", e.AccountID, e.Balance, e.Requested)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
