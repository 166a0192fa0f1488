// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "errors"

// ErrorClass groups ledger errors by what the caller has to do about them.
type ErrorClass uint8

const (
	ValidationError ErrorClass = iota + 1
	StateError
	AuthorizationError
	TransferError
)

func (c ErrorClass) String() string {
	switch c {
	case ValidationError:
		return "validation"
	case StateError:
		return "state"
	case AuthorizationError:
		return "authorization"
	case TransferError:
		return "transfer"
	default:
		return "unknown"
	}
}

// Error is a classified, comparable ledger error.
type Error struct {
	Class ErrorClass
	Msg   string
}

func (e *Error) Error() string {
	return e.Msg
}

// NewError creates a sentinel error of the given class.
func NewError(class ErrorClass, msg string) *Error {
	return &Error{Class: class, Msg: msg}
}

// ClassOf returns the class of the first *Error in err's chain, or 0.
func ClassOf(err error) ErrorClass {
	var le *Error
	if errors.As(err, &le) {
		return le.Class
	}
	return 0
}

var (
	ErrWrongType      = NewError(StateError, "auction type mismatch")
	ErrMathOverflow   = NewError(ValidationError, "math overflow")
	ErrNotInitialized = NewError(StateError, "protocol not initialized")
)
