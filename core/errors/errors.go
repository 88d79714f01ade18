// Package errors provides coded error values for the casino client.
// The error is normally JSON encoded.
package errors

import (
	"encoding/json"
	"errors"
)

type Error struct {
	Code   int32  `json:"code"`
	Detail string `json:"detail"`
}

const (
	CodeUnknown int32 = -1
	// CodeAuth marks a failed or missing credential. Fatal for the
	// affected operation, never retried automatically.
	CodeAuth int32 = 101
	// CodeGame marks an illegal or contextless game action. The caller
	// may retry with corrected parameters.
	CodeGame int32 = 102
	// CodeProtocol marks a server event that implies an impossible
	// transition. The offending event is dropped, the session survives.
	CodeProtocol int32 = 103
)

func (e *Error) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New generates a custom error.
func New(code int32, msg string) error {
	return &Error{
		Code:   code,
		Detail: msg,
	}
}

func NewAuth(msg string) error { return New(CodeAuth, msg) }

func NewGame(msg string) error { return New(CodeGame, msg) }

func NewProtocol(msg string) error { return New(CodeProtocol, msg) }

// Equal tries to compare errors
func Equal(err1 error, err2 error) bool {
	verr1, ok1 := err1.(*Error)
	verr2, ok2 := err2.(*Error)

	if ok1 != ok2 {
		return false
	}

	if !ok1 {
		return err1 == err2
	}

	return verr1.Code == verr2.Code
}

// FromError try to convert go error to *Error
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	if verr, ok := err.(*Error); ok && verr != nil {
		return verr
	}
	return &Error{
		Code:   CodeUnknown,
		Detail: err.Error(),
	}
}

// As finds the first error in err's chain that matches *Error
func As(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var merr *Error
	if errors.As(err, &merr) {
		return merr, true
	}
	return nil, false
}

func is(err error, code int32) bool {
	verr, ok := As(err)
	return ok && verr.Code == code
}

func IsAuth(err error) bool { return is(err, CodeAuth) }

func IsGame(err error) bool { return is(err, CodeGame) }

func IsProtocol(err error) bool { return is(err, CodeProtocol) }
