package httperr

import "errors"

type Kind string

const (
	KindValidation        Kind = "validation"
	KindBadRequest        Kind = "bad_request"
	KindUnauthenticated   Kind = "unauthenticated"
	KindUnauthorized      Kind = "unauthorized"
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindInvalidAction     Kind = "invalid_action"
	KindUnavailable       Kind = "unavailable"
)

// BusinessError is an expected failure that maps onto a client-facing response.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string][]string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindBadRequest, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Is reports whether err is a BusinessError of the given kind.
func Is(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

func NewValidation(fields map[string][]string) error {
	return BusinessError{Kind: KindValidation, Code: "validation_error", Fields: fields}
}

// NewFieldError is a validation error on a single field.
func NewFieldError(field, message string) error {
	return NewValidation(map[string][]string{field: {message}})
}

func NewBadRequest(code, message string) error {
	return BusinessError{Kind: KindBadRequest, Code: code, Message: message}
}

func NewUnauthenticated(message string) error {
	return BusinessError{Kind: KindUnauthenticated, Code: "not_authenticated", Message: message}
}

func NewUnauthorized(code, message string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code, Message: message}
}

func NewNotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func NewInvalidTransition(code, message string) error {
	return BusinessError{Kind: KindInvalidTransition, Code: code, Message: message}
}

func NewInvalidAction(message string) error {
	return BusinessError{Kind: KindInvalidAction, Code: "invalid_action", Message: message}
}

func NewUnavailable(code, message string) error {
	return BusinessError{Kind: KindUnavailable, Code: code, Message: message}
}
