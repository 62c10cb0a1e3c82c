package domain

import (
	"errors"
	"fmt"
)

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

// Is matches on the error code so callers can use errors.Is(err, domain.ErrPostcodeNotFound).
func (e *Error) Is(target error) bool {
	return e.code == target
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func NewErrorf(code error, format string, a ...interface{}) error {
	return WrapErrorf(nil, code, format, a...)
}

func (e *Error) Code() error {
	return e.code
}

var (
	// ErrDataLoad will throw if a monument or postcode file is missing, unreadable or malformed
	ErrDataLoad = errors.New("unable to load data")
	// ErrPostcodeNotFound will throw if the requested postcode has no row in the postcode table
	ErrPostcodeNotFound = errors.New("postcode not found")
	// ErrInvalidCoordinate will throw if the requested postcode only has unparseable eastings/northings
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
)

var MessageInternalServerError string = "internal server error"

// CodeOf returns the code of the first domain error in the chain, or ErrInternalServerError.
func CodeOf(err error) error {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code()
	}
	return ErrInternalServerError
}
