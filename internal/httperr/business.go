package httperr

import (
	"errors"

	"github.com/BruksfildServices01/site-backend/internal/domain"
)

// BusinessError is a rule violation with a stable code. Kind decides the
// HTTP mapping and defaults to a constraint violation.
type BusinessError struct {
	Code    string
	Message string
	Kind    error
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Kind
}

func ErrBusiness(code, message string) error {
	return BusinessError{Code: code, Message: message, Kind: domain.ErrConstraintViolation}
}

func ErrBusinessKind(kind error, code, message string) error {
	return BusinessError{Code: code, Message: message, Kind: kind}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
