package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/boardwalk/internal/action"
	"github.com/alexanderramin/boardwalk/internal/cli/formatter"
)

// perform runs act through a Dispatcher and reports the outcome on the
// app's notifier. success builds the confirmation line; nil prints nothing.
func perform[In, Out any](cmd *cobra.Command, a *App, act action.Action[In, Out], in In, success func(Out) string) (Out, error) {
	n := a.notifier(cmd)
	var failed bool
	d := action.NewDispatcher(act, action.Options[Out]{
		OnSuccess: func(out Out) {
			if success != nil {
				n.Success(success(out))
			}
		},
		OnError: func(msg string) {
			failed = true
			n.Error(msg)
		},
		Logger: a.logger(),
	})
	d.Execute(a.context(cmd), in)

	var zero Out
	if fe := d.FieldErrors(); len(fe) > 0 {
		n.Error("Invalid input")
		fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatFieldErrors(fe))
		return zero, ErrReported
	}
	if failed {
		return zero, ErrReported
	}
	out, ok := d.Data()
	if !ok {
		return zero, errors.New("request failed; see log for details")
	}
	return out, nil
}

// fetch runs a read-only action and turns a failed result into an error.
func fetch[In, Out any](ctx context.Context, act action.Action[In, Out], in In) (Out, error) {
	var zero Out
	res, err := act(ctx, in)
	if err != nil {
		return zero, err
	}
	if res.Data == nil {
		if res.Error != "" {
			return zero, errors.New(res.Error)
		}
		return zero, fmt.Errorf("request rejected (%s)", res.Code)
	}
	return *res.Data, nil
}
