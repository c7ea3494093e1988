package httperr

import (
	"errors"
	"strings"
)

// BusinessError is a domain rule violation identified by a stable snake_case
// code. Handlers translate it into a 4xx response.
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessf(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness unwraps err into a BusinessError when it carries one.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

const (
	CodeInvalidRequest    = "invalid_request"
	CodeIDRequired        = "id_required"
	CodeInvalidTransition = "invalid_status_transition"
	CodeInternal          = "internal_error"
)

// StatusFor maps a business code to its HTTP status.
func StatusFor(code string) int {
	switch {
	case code == CodeInvalidTransition:
		return 409
	case strings.HasSuffix(code, "_not_found"):
		return 404
	default:
		return 400
	}
}
