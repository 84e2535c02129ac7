package domain

import "errors"

var (
	ErrNotFound        = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidFilter   = errors.New("value is not in filter vocabulary")
	ErrInvalidProduct  = errors.New("invalid product")
)
