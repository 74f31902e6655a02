package domain

import "errors"

// Calculation failures are returned as wrapped sentinel errors so callers can
// branch with errors.Is and decide whether to block a save or prompt for
// correction. The core never retries or swallows.
var (
	// ErrCurrencyMismatch indicates an operation received Money or rate values
	// with incompatible currencies. Never coerced.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrInvalidRate indicates a non-positive exchange rate or a percentage
	// rate outside [0, 100].
	ErrInvalidRate = errors.New("invalid rate")

	// ErrNegativeQuantityOrPrice indicates a malformed line item. Rejected at
	// construction so invalid items never enter a calculation.
	ErrNegativeQuantityOrPrice = errors.New("negative quantity or price")

	// ErrUnknownDutyType indicates a duty policy kind the computer does not
	// recognize. Duty matching is exhaustive; there is no silent default.
	ErrUnknownDutyType = errors.New("unknown duty type")

	// ErrUnknownBasis indicates an unrecognized allocation basis.
	ErrUnknownBasis = errors.New("unknown allocation basis")
)
