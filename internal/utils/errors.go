package utils

import "errors"

// Common application errors used across services.
var (
	ErrDuplicateUID      = errors.New("DUPLICATE_UID")
	ErrProductNotFound   = errors.New("PRODUCT_NOT_FOUND")
	ErrLedgerUnavailable = errors.New("LEDGER_UNAVAILABLE")
	ErrMissingField      = errors.New("MISSING_FIELD")
)
