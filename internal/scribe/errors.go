package scribe

import (
	"errors"
	"fmt"

	"codeberg.org/codescribe/server/internal/llm"
)

// input failed validation; never reaches the backend
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// action identifier is not one of the supported actions
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Action)
}

// completion backend call failed (network, auth, quota, malformed response, timeout)
type BackendError struct {
	Provider llm.Provider
	Err      error
}

func (e *BackendError) Error() string {
	if e.Provider == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// reports whether err should be surfaced to the caller as a bad request
func IsInputError(err error) bool {
	var validationErr *ValidationError
	var unknownErr *UnknownActionError

	return errors.As(err, &validationErr) || errors.As(err, &unknownErr)
}

// reports whether err is an unrecognized action
func IsUnknownAction(err error) bool {
	var unknownErr *UnknownActionError

	return errors.As(err, &unknownErr)
}
