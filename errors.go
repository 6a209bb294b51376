package valutatrade

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for conditions that carry no extra payload.
// Callers match them with errors.Is.
var (
	// ErrCurrencyNotFound reports a currency code absent from the registry.
	ErrCurrencyNotFound = errors.New("currency not found")
	// ErrRateNotFound reports a pair absent from the rate snapshot.
	ErrRateNotFound = errors.New("rate not found")
	// ErrPermissionDenied reports an operation that requires a logged-in user.
	ErrPermissionDenied = errors.New("login required")
	// ErrUserNotFound reports a login attempt for an unknown username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken reports a registration attempt with a username already in use.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrWrongPassword reports a login attempt with a bad password.
	ErrWrongPassword = errors.New("wrong password")
)

// ValidationError reports malformed user input (non-positive amount, empty name...).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CurrencyError decorates ErrCurrencyNotFound with the offending code.
type CurrencyError struct {
	Code string
}

func (e *CurrencyError) Error() string {
	return fmt.Sprintf("unknown currency %q", e.Code)
}

func (e *CurrencyError) Unwrap() error { return ErrCurrencyNotFound }

// RateError decorates ErrRateNotFound with the pair that could not be resolved.
type RateError struct {
	Pair string
}

func (e *RateError) Error() string {
	return fmt.Sprintf("no rate for pair %q", e.Pair)
}

func (e *RateError) Unwrap() error { return ErrRateNotFound }

// InsufficientFundsError reports a debit that exceeds the wallet balance.
// It carries the figures so the caller can report them to the user.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
	Currency  string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %s %s, required %s %s",
		e.Available, e.Currency, e.Required, e.Currency)
}

// ApiDataError reports a quote that exists in no usable form (missing or zero rate)
// for an operation that cannot proceed without it.
type ApiDataError struct {
	Pair   string
	Reason string
}

func (e *ApiDataError) Error() string {
	return fmt.Sprintf("no usable rate for %q: %s", e.Pair, e.Reason)
}

// ApiRequestError reports a failure of a single rate provider: network error,
// timeout, bad status, or an unparseable payload. The aggregator catches it
// and skips the provider for the run.
type ApiRequestError struct {
	Provider string
	Err      error
}

func (e *ApiRequestError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ApiRequestError) Unwrap() error { return e.Err }
