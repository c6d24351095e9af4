package service

import (
	"errors"
	"net/http"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/utils"
)

// Error is an expected failure that is shown to the client as is.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error    { return NewError(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error  { return NewError(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error     { return NewError(http.StatusForbidden, message) }
func NotFound(message string) *Error      { return NewError(http.StatusNotFound, message) }
func Conflict(message string) *Error      { return NewError(http.StatusConflict, message) }
func Unprocessable(message string) *Error { return NewError(http.StatusUnprocessableEntity, message) }

// ValidationError carries itemized field failures, rendered as 422.
type ValidationError struct {
	Fields []utils.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}

// IsNotFound reports whether err is a repository miss.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// duplicate turns a unique-index violation into a 409 with message. It
// covers the window between an existence check and the insert.
func duplicate(err error, message string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return Conflict(message)
	}
	return err
}

// found converts a repository miss into a client-facing 404.
func found(err error, message string) error {
	if IsNotFound(err) {
		return NotFound(message)
	}
	return err
}
