package invoice

import "errors"

var (
	ErrNotFound        = errors.New("invoice not found")
	ErrDuplicateNumber = errors.New("duplicate invoice number")
)
