// Package submit runs a form submission: validate, then send exactly one
// request, with a guard that ignores a second submit of the same form
// instance while the first is still pending.
package submit

import (
	"context"
	"sync"

	"github.com/samber/oops"

	"skillbridge/internal/form"
)

type State int

const (
	Editing State = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ErrInFlight is returned when a submission is already pending.
var ErrInFlight = oops.Code("SUBMIT_IN_FLIGHT").Errorf("a submission is already in flight")

// Result is the outcome of one Submit. Errors is set when validation failed;
// Err carries the send failure when State is Failed.
type Result struct {
	State  State
	Errors form.Errors
	Err    error
}

// Workflow is the state of one form instance.
type Workflow struct {
	mu    sync.Mutex
	state State
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow) pending() bool {
	return w.state == Validating || w.state == Submitting
}

// Submit validates and, when the form is valid, calls send once. It returns
// ErrInFlight without doing anything if another Submit is pending. A failed
// send leaves the workflow back in Editing.
func (w *Workflow) Submit(ctx context.Context, validate func() form.Errors, send func(context.Context) error) (Result, error) {
	w.mu.Lock()
	if w.pending() {
		w.mu.Unlock()
		return Result{}, ErrInFlight
	}
	w.state = Validating
	w.mu.Unlock()

	if errs := validate(); !errs.Empty() {
		w.settle(Editing)
		return Result{State: Editing, Errors: errs}, nil
	}

	w.mu.Lock()
	w.state = Submitting
	w.mu.Unlock()

	if err := send(ctx); err != nil {
		w.settle(Editing)
		return Result{State: Failed, Err: err}, nil
	}

	w.settle(Succeeded)
	return Result{State: Succeeded}, nil
}

func (w *Workflow) settle(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}
