// Package errors holds the domain error taxonomy shared by the ledger, the
// service layer and the HTTP handlers.
package errors

import stderrors "errors"

// DomainError is a business rule failure with a stable machine-readable code.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// As returns the first DomainError in err's chain.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// CodeOf returns the domain code of err, or "" when err carries none.
func CodeOf(err error) string {
	if de, ok := As(err); ok {
		return de.Code
	}
	return ""
}

var (
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "resource not found",
	}
	ErrForbidden = &DomainError{
		Code:    "FORBIDDEN",
		Message: "operation not allowed for this session",
	}
	ErrInactive = &DomainError{
		Code:    "INACTIVE",
		Message: "resource is not active",
	}
)
