package schema

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound = &Error{ErrorCodeNotFound, "Not Found"}
	ErrInternal = &Error{ErrorCodeInternal, "Internal Server Error"}
)

// Error is an error which is safe to show to a client.
type Error struct {
	Code ErrorCode
	Text string
}

func (e *Error) String() string {
	return fmt.Sprintf("%v: %v", e.Code, e.Text)
}

func (e *Error) Error() string {
	return e.Text
}

func (e *Error) Status() int {
	status, ok := errorStatus[e.Code]
	if !ok {
		return http.StatusInternalServerError
	}
	return status
}

// Is matches errors by code, so a wrapped not found error is ErrNotFound.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func NewError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code: code,
		Text: fmt.Sprintf(format, args...),
	}
}

func NewNotFoundError(format string, args ...interface{}) *Error {
	return NewError(ErrorCodeNotFound, format, args...)
}

func NewErrorFromErr(err error) (*Error, bool) {
	var appErr *Error
	if ok := errors.As(err, &appErr); ok {
		return appErr, true
	}
	return nil, false
}

type ErrorCode string

const (
	ErrorCodeNotFound ErrorCode = "not_found"
	ErrorCodeInternal ErrorCode = "internal"
)

var errorStatus = map[ErrorCode]int{
	ErrorCodeNotFound: http.StatusNotFound,
	ErrorCodeInternal: http.StatusInternalServerError,
}
