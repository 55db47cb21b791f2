// Package apierr defines the error taxonomy of the HTTP API.
//
// Every failure surfaced to a client is either a UserError carrying a safe,
// fixed message, or an opaque unexpected error that only leaks a random
// correlation id. The error handler middleware maps both onto the uniform
// {success:false, result:{...}} envelope.
package apierr

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

// Sentinels recognised by the error handler middleware.
var (
	ErrInvalidJSON  = errors.New("invalid json body")
	ErrInvalidUsage = errors.New("invalid usage")
)

// UserError is a failure the caller can act on. Its message is safe to
// return verbatim.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// User builds a UserError from a format string.
func User(format string, args ...interface{}) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

func NotLogged() *UserError { return &UserError{Message: NotLoggedText} }
func AdminOnly() *UserError { return &UserError{Message: AdminOnlyText} }
func InvalidToken(token string) *UserError {
	return User(InvalidTokenText, token)
}
func MissingParameter(name string) *UserError {
	return User(MissingParamText, name)
}
func CannotBePostParameter(name string) *UserError {
	return User(CannotBePostParamText, name)
}
func CannotBeGetParameter(name string) *UserError {
	return User(CannotBeGetParamText, name)
}

// IsUser reports whether err is a UserError and returns it.
func IsUser(err error) (*UserError, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// NewErrorID returns a 32-byte URL-safe correlation id for unexpected
// failures, so a client-visible envelope can be matched to server logs.
func NewErrorID() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
