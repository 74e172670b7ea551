// Package contract defines the inputs, outputs and error codes that cross
// the action boundary, together with the validation rules applied to them.
package contract

import (
	"errors"
	"sort"
)

type ErrorCode string

const (
	ErrValidation   ErrorCode = "VALIDATION"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPersistence  ErrorCode = "PERSISTENCE"
)

// FieldErrors maps a dotted JSON path ("items.2.order") to its messages.
type FieldErrors map[string][]string

// Add appends msg under key, allocating the map on first use.
func (f *FieldErrors) Add(key, msg string) {
	if *f == nil {
		*f = FieldErrors{}
	}
	(*f)[key] = append((*f)[key], msg)
}

// Merge copies every entry of other into f.
func (f *FieldErrors) Merge(other FieldErrors) {
	for k, msgs := range other {
		for _, m := range msgs {
			f.Add(k, m)
		}
	}
}

// Keys returns the field paths in sorted order.
func (f FieldErrors) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type ActionError struct {
	Code    ErrorCode
	Message string
	Fields  FieldErrors
}

func (e *ActionError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func ValidationError(fields FieldErrors) *ActionError {
	return &ActionError{Code: ErrValidation, Message: "Invalid input", Fields: fields}
}

func UnauthorizedError(msg string) *ActionError {
	return &ActionError{Code: ErrUnauthorized, Message: msg}
}

func NotFoundError(msg string) *ActionError {
	return &ActionError{Code: ErrNotFound, Message: msg}
}

func PersistenceError(msg string) *ActionError {
	return &ActionError{Code: ErrPersistence, Message: msg}
}

// CodeOf returns the code of the first ActionError in err's chain, or
// ErrPersistence when there is none.
func CodeOf(err error) ErrorCode {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ErrPersistence
}
