// Package common defines shared constants and sentinel errors used across
// the client and server layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnavailable  = errors.New("feature unavailable on this device")
	ErrorConnectivity = errors.New("could not reach the server")

	// Validation errors.
	ErrInvalidEmail   = errors.New("invalid email")
	ErrEmailRequired  = errors.New("email required")
	ErrEmptyPromoCode = errors.New("empty promo code")
	ErrEmptyNote      = errors.New("empty note")
	ErrEmptyQuery     = errors.New("empty search query")

	// Purchase / promo errors.
	ErrUnknownProduct  = errors.New("unknown product")
	ErrNoCheckoutURL   = errors.New("payment session has no checkout url")
	ErrPromoRejected   = errors.New("promo code rejected")
	ErrPromoUsed       = errors.New("promo code already used")
	ErrPromoExpired    = errors.New("promo code expired")
	ErrInvalidPayToken = errors.New("invalid payment reference token")
)
