package repository

import (
	"errors"
	"fmt"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
)

// Error is the single failure type crossing the repository boundary.
// Message is short and user-presentable; Err preserves the original cause
// for diagnostics. No repository method lets any other error type escape.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// fail wraps err into an *Error. When the cause carries a well-known
// sentinel, its user-facing phrasing wins over the operation default.
func fail(defaultMsg string, err error) error {
	msg := defaultMsg
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		msg = "Your session has expired. Please sign in again."
	case errors.Is(err, common.ErrUnavailable):
		msg = "Could not reach the server. Check your connection and try again."
	}
	return &Error{Message: msg, Err: err}
}

// failValidation reports locally rejected input; no network call was made.
func failValidation(msg string) error {
	return &Error{Message: msg, Err: common.ErrValidation}
}
