// Package callbacks implements the lifecycle-event extension mechanism of the
// fit loop: the Callback contract, the Runner that dispatches events in
// registration order, the cooperative cancellation sentinels, and the stock
// callbacks (train-eval bookkeeping, progress reporting, early stopping, CSV
// history, Prometheus export).
package callbacks

import (
	"errors"

	"github.com/arvindmuralie77/gradsflow/internal/optim"
	"github.com/arvindmuralie77/gradsflow/internal/tracker"
)

// Cancellation sentinels. A callback requests cooperative early termination
// by returning (or wrapping) the sentinel of the scope it wants to end; the
// engine swallows it at exactly that scope and continues from the next outer
// frame. Any other error aborts the run.
var (
	// ErrCancelEpoch ends the current epoch; the next epoch still runs.
	ErrCancelEpoch = errors.New("cancel current epoch")
	// ErrCancelFit ends the whole fit run.
	ErrCancelFit = errors.New("cancel fit")
)

// Event names the two cancelable scopes of a run.
type Event string

// Scoped events.
const (
	EventFit   Event = "fit"
	EventEpoch Event = "epoch"
)

// StepOutput is what one train or val step produced.
type StepOutput struct {
	// Loss is the scalar step loss, used for tracking.
	Loss float64
	// RawLoss is the framework's loss value. If it implements Backpropagator
	// the train-eval callback runs the backward pass through it.
	RawLoss any
	// Metrics holds the metric scores computed for this step.
	Metrics map[string]float64
}

// Payload carries the batch and its outputs to the step-end hooks.
type Payload struct {
	Batch  any
	Output StepOutput
}

// Backpropagator is implemented by loss values that can run a backward pass,
// filling the learner's parameter gradients.
type Backpropagator interface {
	Backward()
}

// Trainer is the view of the engine exposed to callbacks.
type Trainer interface {
	// Tracker returns the engine's run state aggregator.
	Tracker() *tracker.Tracker
	// Optimizer returns the compiled optimizer, nil if none was configured.
	Optimizer() optim.Optimizer
	// Schedulers returns the compiled learning-rate schedulers.
	Schedulers() []optim.Scheduler
	// SetTrainMode flips the learner between train and eval behavior,
	// if the learner distinguishes them.
	SetTrainMode(training bool)
	// ResetMetrics clears the compiled metric accumulators.
	ResetMetrics()
}

// Callback receives lifecycle events from the fit loop. Implementations
// usually embed Base and override the hooks they care about.
//
// Hooks run synchronously on the fit goroutine, in registration order. A hook
// returning a cancellation sentinel ends its scope cooperatively; any other
// error aborts the run.
type Callback interface {
	OnFitStart() error
	OnFitEnd() error

	OnEpochStart() error
	OnEpochEnd() error

	OnTrainEpochStart() error
	OnTrainEpochEnd() error
	OnValEpochStart() error
	OnValEpochEnd() error

	OnTrainStepStart() error
	OnTrainStepEnd(p Payload) error
	OnValStepStart() error
	OnValStepEnd(p Payload) error

	OnForwardStart() error
	OnForwardEnd() error

	// Clean releases any resources the callback holds. It runs exactly once
	// after fit ends, on every exit path.
	Clean()
}

// Base is a no-op Callback, meant for embedding.
type Base struct{}

func (Base) OnFitStart() error            { return nil }
func (Base) OnFitEnd() error              { return nil }
func (Base) OnEpochStart() error          { return nil }
func (Base) OnEpochEnd() error            { return nil }
func (Base) OnTrainEpochStart() error     { return nil }
func (Base) OnTrainEpochEnd() error       { return nil }
func (Base) OnValEpochStart() error       { return nil }
func (Base) OnValEpochEnd() error         { return nil }
func (Base) OnTrainStepStart() error      { return nil }
func (Base) OnTrainStepEnd(Payload) error { return nil }
func (Base) OnValStepStart() error        { return nil }
func (Base) OnValStepEnd(Payload) error   { return nil }
func (Base) OnForwardStart() error        { return nil }
func (Base) OnForwardEnd() error          { return nil }
func (Base) Clean()                       {}
