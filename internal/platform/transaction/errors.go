package transaction

import "errors"

// Transaction validation errors
var (
	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrMissingDate         = errors.New("transaction date is required")
	ErrInvalidStatus       = errors.New("invalid transaction status")
	ErrMissingCategory     = errors.New("category is required")
	ErrTransactionNotFound = errors.New("transaction not found")
)
