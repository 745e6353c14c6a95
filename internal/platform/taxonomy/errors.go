package taxonomy

import "errors"

// Taxonomy validation errors
var (
	ErrMissingCategoryName    = errors.New("category name is required")
	ErrCategoryNameTooLong    = errors.New("category name must be 100 characters or less")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrBlankSubcategory       = errors.New("subcategory name must not be blank")
	ErrDuplicateSubcategory   = errors.New("duplicate subcategory name")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrCategoryAlreadyExists  = errors.New("category with this name already exists")
)
