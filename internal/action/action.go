// Package action implements the request/response protocol shared by every
// board mutation: a tagged Result, the server-side Define wrapper and the
// client-side Dispatcher.
package action

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/boardwalk/internal/contract"
)

// Result is the outcome of an action. A successful result carries Data; a
// failed one carries Error and Code; a rejected input carries FieldErrors.
type Result[Out any] struct {
	Data        *Out                 `json:"data,omitempty"`
	Error       string               `json:"error,omitempty"`
	Code        contract.ErrorCode   `json:"code,omitempty"`
	FieldErrors contract.FieldErrors `json:"fieldErrors,omitempty"`
}

// Action runs one operation. A non-nil error is a fault (transport failure,
// panic) as opposed to a structured failure inside the Result.
type Action[In, Out any] func(ctx context.Context, in In) (*Result[Out], error)

// Handler is the business logic behind an action.
type Handler[In, Out any] func(ctx context.Context, in In) (Out, error)

// Validator checks an input; nil means valid.
type Validator[In any] func(in In) contract.FieldErrors

// Ok wraps data in a successful result.
func Ok[Out any](data Out) *Result[Out] {
	return &Result[Out]{Data: &data}
}

// Fail converts err into a structured result. Errors that are not an
// ActionError are reported as PERSISTENCE with a generic message.
func Fail[Out any](err error) *Result[Out] {
	var ae *contract.ActionError
	if !errors.As(err, &ae) {
		return &Result[Out]{Error: "Failed to complete the request", Code: contract.ErrPersistence}
	}
	if ae.Code == contract.ErrValidation {
		return &Result[Out]{Code: ae.Code, FieldErrors: ae.Fields}
	}
	return &Result[Out]{Error: ae.Message, Code: ae.Code, FieldErrors: ae.Fields}
}

// Define builds an Action that validates its input before calling handler and
// never returns a fault: every error becomes a Result.
func Define[In, Out any](name string, log logrus.FieldLogger, validate Validator[In], handler Handler[In, Out]) Action[In, Out] {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return func(ctx context.Context, in In) (*Result[Out], error) {
		if validate != nil {
			if fe := validate(in); len(fe) > 0 {
				return &Result[Out]{Code: contract.ErrValidation, FieldErrors: fe}, nil
			}
		}
		out, err := handler(ctx, in)
		if err != nil {
			entry := log.WithFields(logrus.Fields{"action": name, "code": contract.CodeOf(err)})
			if contract.CodeOf(err) == contract.ErrPersistence {
				entry.WithError(err).Error("action failed")
			} else {
				entry.WithError(err).Debug("action rejected")
			}
			return Fail[Out](err), nil
		}
		return Ok(out), nil
	}
}
