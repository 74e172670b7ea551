package action

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/boardwalk/internal/contract"
)

// Options are the callbacks a Dispatcher invokes around each execution.
type Options[Out any] struct {
	OnSuccess  func(data Out)
	OnError    func(msg string)
	OnComplete func()
	Logger     logrus.FieldLogger
}

// Dispatcher invokes an Action and tracks its loading, error and data state.
// Execute may be called from several goroutines at once.
type Dispatcher[In, Out any] struct {
	action Action[In, Out]
	opts   Options[Out]
	log    logrus.FieldLogger

	mu          sync.Mutex
	inFlight    int
	err         string
	fieldErrors contract.FieldErrors
	data        *Out
}

func NewDispatcher[In, Out any](a Action[In, Out], opts Options[Out]) *Dispatcher[In, Out] {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher[In, Out]{action: a, opts: opts, log: log}
}

// Execute runs the action once. Faults are logged and swallowed; OnComplete
// always runs last.
func (d *Dispatcher[In, Out]) Execute(ctx context.Context, in In) {
	d.mu.Lock()
	d.inFlight++
	d.err = ""
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.inFlight--
		d.mu.Unlock()
		if d.opts.OnComplete != nil {
			d.opts.OnComplete()
		}
	}()

	result, err := d.invoke(ctx, in)
	if err != nil {
		d.log.WithError(err).Error("action dispatch failed")
		return
	}
	if result == nil {
		return
	}

	d.mu.Lock()
	d.fieldErrors = result.FieldErrors
	d.mu.Unlock()

	if result.Error != "" {
		d.mu.Lock()
		d.err = result.Error
		d.mu.Unlock()
		if d.opts.OnError != nil {
			d.opts.OnError(result.Error)
		}
		return
	}
	if result.Data != nil {
		d.mu.Lock()
		d.data = result.Data
		d.mu.Unlock()
		if d.opts.OnSuccess != nil {
			d.opts.OnSuccess(*result.Data)
		}
	}
}

func (d *Dispatcher[In, Out]) invoke(ctx context.Context, in In) (result *Result[Out], err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("action panicked: %v", r)
		}
	}()
	return d.action(ctx, in)
}

// Loading reports whether any execution is in flight.
func (d *Dispatcher[In, Out]) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight > 0
}

// Error returns the error message of the most recent failed result.
func (d *Dispatcher[In, Out]) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// FieldErrors returns the field errors of the most recent result.
func (d *Dispatcher[In, Out]) FieldErrors() contract.FieldErrors {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fieldErrors
}

// Data returns the data of the most recent successful result, if any.
func (d *Dispatcher[In, Out]) Data() (Out, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.data == nil {
		var zero Out
		return zero, false
	}
	return *d.data, true
}
